package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// PipelineRequest is the validated input of one pipeline run.
// ScheduleAt is meaningful only when AutoUploadEnabled is true.
type PipelineRequest struct {
	Script            string  `json:"script" validate:"required,min=20"`
	ProjectName       string  `json:"projectName" validate:"required,min=3,max=80"`
	VoiceProfile      string  `json:"voiceProfile,omitempty" validate:"omitempty,max=120"`
	TargetLanguage    string  `json:"targetLanguage,omitempty" validate:"omitempty,max=35"`
	AutoUploadEnabled bool    `json:"autoUploadEnabled,omitempty"`
	ScheduleAt        *string `json:"scheduleAt,omitempty"`
}

// Schedule returns the non-empty schedule timestamp, honoring the
// invariant that it only matters when auto-upload is enabled.
func (r *PipelineRequest) Schedule() string {
	if !r.AutoUploadEnabled || r.ScheduleAt == nil {
		return ""
	}
	return *r.ScheduleAt
}

var validate = validator.New()

var fieldMessages = map[string]string{
	"script.required":      "Script is required.",
	"script.min":           "Script must include at least 20 characters.",
	"projectName.required": "Project name is required.",
	"projectName.min":      "Project name must be at least 3 characters.",
	"projectName.max":      "Project name must be at most 80 characters.",
	"voiceProfile.max":     "Voice profile must be at most 120 characters.",
	"targetLanguage.max":   "Target language must be at most 35 characters.",
}

// FieldErrors validates the request and returns per-field messages in
// the shape the API error envelope expects; nil when the request is valid.
func (r *PipelineRequest) FieldErrors() map[string][]string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"request": {"Invalid request body."}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := jsonField(fe.Field())
		msg, ok := fieldMessages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// jsonField maps Go field names to their JSON names for error keys.
func jsonField(name string) string {
	switch name {
	case "Script":
		return "script"
	case "ProjectName":
		return "projectName"
	case "VoiceProfile":
		return "voiceProfile"
	case "TargetLanguage":
		return "targetLanguage"
	case "AutoUploadEnabled":
		return "autoUploadEnabled"
	case "ScheduleAt":
		return "scheduleAt"
	}
	return name
}
