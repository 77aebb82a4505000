package api

import "github.com/soaringjerry/Survey/internal/models"

// Messages shown by the mobile client for rejected form fields.
var fieldMessages = map[string]string{
	"mobile": "Please enter a valid 10-digit mobile number",
}

type loginRequest struct {
	Mobile string `json:"mobile" validate:"required,len=10,number"`
}

type otpRequest struct {
	OTP string `json:"otp" validate:"required,len=6,number"`
}

type profileRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Age           int    `json:"age" validate:"required,gte=1,lte=99"`
	Qualification string `json:"qualification" validate:"required,max=200"`
	Target        string `json:"target" validate:"required,max=200"`
}

func (p profileRequest) update() models.ProfileUpdate {
	return models.ProfileUpdate{
		Email:         &p.Email,
		Age:           &p.Age,
		Qualification: &p.Qualification,
		Target:        &p.Target,
	}
}

type answerRequest struct {
	Value int `json:"value" validate:"required,min=1,max=7"`
}
