package requests

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"koita-chat-api/internal/utils/platformerrors"
)

const (
	MsgInvalidRequest = "Requête invalide"
	MsgMissingMessage = "Message manquant"
	MsgMissingText    = "Texte manquant"
	MsgMissingAudio   = "Audio manquant"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// fieldMessages maps "field.tag" to the message shown to the user.
var fieldMessages = map[string]string{
	"email.required":           "Email et mot de passe requis",
	"email.email":              "Email invalide",
	"password.required":        "Email et mot de passe requis",
	"password.min":             "Le mot de passe doit contenir au moins 6 caractères",
	"firstName.required":       "Prénom requis",
	"lastName.required":        "Nom requis",
	"message.required":         MsgMissingMessage,
	"text.required":            MsgMissingText,
	"audio.required":           MsgMissingAudio,
	"settings.required":        "Paramètres manquants",
	"temperature.gte":          "La température doit être comprise entre 0 et 1.5",
	"temperature.lte":          "La température doit être comprise entre 0 et 1.5",
	"maxTokens.gte":            "maxTokens doit être compris entre 1 et 32000",
	"maxTokens.lte":            "maxTokens doit être compris entre 1 et 32000",
	"theme.oneof":              "Thème invalide",
	"currentPassword.required": "Mot de passe actuel requis",
	"newPassword.required":     "Nouveau mot de passe requis",
	"newPassword.min":          "Le mot de passe doit contenir au moins 6 caractères",
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the struct tags of req and returns a VALIDATION error for the first failure.
func Validate(ctx context.Context, req any) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			MsgInvalidRequest, err, "7e9a1c3d-5f2b-4d8e-a0c6-2e4a6c8e0b13")
	}

	first := fieldErrs[0]
	message, ok := fieldMessages[first.Field()+"."+first.Tag()]
	if !ok {
		message = "Champ invalide: " + first.Field()
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
		message, err, "8f0b2d4e-6a3c-4e9f-b1d7-3f5b7d9f1c24",
		map[string]any{"field": first.Namespace(), "rule": first.Tag()})
}
