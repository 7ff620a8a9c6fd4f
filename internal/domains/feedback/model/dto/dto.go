package dto

import (
	"time"

	"hotel/internal/domains/feedback/model"
	"hotel/shared"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ToModel stamps the feedback at second precision so the returned timeComment matches the stored value.
func (c *CreateFeedbackRequest) ToModel(userID string) model.Feedback {
	now := timezone.Now().Truncate(time.Second)

	return model.Feedback{
		ID:          uuid.NewString(),
		UserID:      userID,
		Comment:     c.Comment,
		TimeComment: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type DeleteFeedbackRequest struct {
	TimeComment string `json:"timeComment" validate:"required"`
}

type FeedbackResponse struct {
	CustomerName string `json:"customerName,omitempty"`
	Comment      string `json:"comment"`
	TimeComment  string `json:"timeComment"`
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.CustomerName = model.CustomerName
	r.Comment = model.Comment
	r.TimeComment = timezone.Format(model.TimeComment, constant.DateFormat)
}

type GetFeedbacksResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbacksResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedbacks = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedbacks[i].FromModel(mod)
	}
}
