package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type ProfileRequest struct {
	Name      string `json:"name"      validate:"required,max=100"`
	BirthDate string `json:"birthDate" validate:"omitempty,bookingdate"`
	IDCard    string `json:"idCard"    validate:"required,max=30"`
	Phone     string `json:"phone"     validate:"required,max=20"`
	Address   string `json:"address"   validate:"omitempty,max=255"`
}

func (p *ProfileRequest) ToProfile(userID, email string) model.Profile {
	profile := model.Profile{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    p.Name,
		IDCard:  p.IDCard,
		Email:   email,
		Phone:   p.Phone,
		Address: p.Address,
	}

	if birthDate, err := shared.ParseDate(p.BirthDate); err == nil {
		profile.BirthDate = &birthDate
	}

	return profile
}

type CreateStaffRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	ProfileRequest
}

func (r *CreateStaffRequest) ToUserModel(username, hashedPassword string) model.User {
	return NewUser(r.Email, hashedPassword, constant.RoleStaff, username)
}

func (r *CreateStaffRequest) ToStaffModel(username, userID string) model.Staff {
	return model.Staff{
		Profile:  r.ToProfile(userID, r.Email),
		Metadata: newMetadata(username),
	}
}

// NewUser builds an active account with a fresh id and no cancellations.
func NewUser(email, hashedPassword, role, username string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: newMetadata(username),
	}
}

func newMetadata(username string) gModel.Metadata {
	now := timezone.Now()

	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  username,
		ModifiedBy: username,
	}
}

type UpdateProfileRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
}

type UpdateStateRequest struct {
	Active *bool `db:"active" json:"active" validate:"required"`
}

type ProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	IDCard    string `json:"idCard"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (p *ProfileResponse) FromModel(profile model.Profile) {
	p.ID = profile.ID
	p.Name = profile.Name
	p.IDCard = profile.IDCard
	p.Email = profile.Email
	p.Phone = profile.Phone
	p.Address = profile.Address

	if profile.BirthDate != nil {
		p.BirthDate = timezone.Format(*profile.BirthDate, constant.DateOnlyFormat)
	}
}

type UserResponse struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Role          string           `json:"role"`
	Active        bool             `json:"active"`
	Cancellations int              `json:"cancellations"`
	LastLogin     string           `json:"lastLogin,omitempty"`
	Profile       *ProfileResponse `json:"profile,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
	r.Active = user.Active
	r.Cancellations = user.Cancellations
	r.LastLogin = formatOptional(user.LastLogin)
	r.Metadata.FromModel(user.Metadata)
}

func (r *UserResponse) WithProfile(profile model.Profile) {
	if profile.ID == constant.Empty {
		return
	}

	r.Profile = &ProfileResponse{}
	r.Profile.FromModel(profile)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
