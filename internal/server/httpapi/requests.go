package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/go-playground/validator/v10"
)

type freelancerRequest struct {
	UserID       string         `json:"userId" validate:"required"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Country      string         `json:"country"`
	Skills       []string       `json:"skills"`
	Categories   []string       `json:"categories" validate:"dive,required"`
	Profile      models.Profile `json:"profile"`
	MobileNumber string         `json:"mobileNumber"`
}

func (req *freelancerRequest) model() *models.Freelancer {
	return &models.Freelancer{
		UserID:       req.UserID,
		Name:         req.Name,
		Email:        req.Email,
		Country:      req.Country,
		Skills:       req.Skills,
		Categories:   req.Categories,
		Profile:      req.Profile,
		MobileNumber: req.MobileNumber,
	}
}

type clientRequest struct {
	UserID              string         `json:"userId" validate:"required"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Country             string         `json:"country"`
	CompanyName         string         `json:"companyName"`
	BusinessDescription string         `json:"businessDescription"`
	Profile             models.Profile `json:"profile"`
	MobileNumber        string         `json:"mobileNumber"`
}

func (req *clientRequest) model() *models.Client {
	return &models.Client{
		UserID:              req.UserID,
		Name:                req.Name,
		Email:               req.Email,
		Country:             req.Country,
		CompanyName:         req.CompanyName,
		BusinessDescription: req.BusinessDescription,
		Profile:             req.Profile,
		MobileNumber:        req.MobileNumber,
	}
}

type jobRequest struct {
	JobID          string   `json:"jobId"`
	ClientID       string   `json:"clientId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Budget         string   `json:"budget"`
	Timeline       string   `json:"timeline"`
	SkillsRequired []string `json:"skillsRequired"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	PaymentType    string   `json:"paymentType"`
}

func (req *jobRequest) model() *models.Job {
	return &models.Job{
		JobID:          req.JobID,
		ClientID:       req.ClientID,
		Title:          req.Title,
		Description:    req.Description,
		Budget:         req.Budget,
		Timeline:       req.Timeline,
		SkillsRequired: req.SkillsRequired,
		Category:       req.Category,
		Location:       req.Location,
		PaymentType:    req.PaymentType,
	}
}

type loginRequest struct {
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Password     string `json:"password"`
}

type checkMobileRequest struct {
	MobileNumber string `json:"mobileNumber" validate:"required"`
}

// decode reads a JSON body into dst and validates it. Both failures are
// reported as common.ErrorValidation.
func decode(r *http.Request, v *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	if err := v.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, describe(err))
	}
	return nil
}

// fieldLabels overrides the json field name in validation messages.
var fieldLabels = map[string]string{
	"mobileNumber": "Mobile number",
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Field()
	if label, ok := fieldLabels[field]; ok {
		field = label
	}
	if fe.Tag() == "required" {
		return field + " is required"
	}
	return field + " is invalid"
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
