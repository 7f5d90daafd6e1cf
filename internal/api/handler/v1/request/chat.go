package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PostMessageRequest struct {
	Content string `json:"content"`
}

func (req *PostMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 1000)),
	)
}

type AskCoachRequest struct {
	Question string `json:"question"`
}

func (req *AskCoachRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Question, validation.Required, validation.Length(1, 2000)),
	)
}
