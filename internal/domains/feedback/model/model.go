package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "feedbacks"
	EntityName = "feedback"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldComment     = "comment"
	FieldTimeComment = "time_comment"
)

// Feedback is a guest comment; a customer identifies their own feedback by its time_comment.
type Feedback struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Comment      string    `db:"comment"`
	TimeComment  time.Time `db:"time_comment"`
	CustomerName string    `db:"customer_name" table:"customers" column:"name"`
	model.Metadata
}

func (Feedback) GetJoinQuery() string {
	return "JOIN customers ON customers.user_id = feedbacks.user_id"
}
