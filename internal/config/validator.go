package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("jsonfile", isJSONFilePath); err != nil {
		return nil, nil, fmt.Errorf("failed to register jsonfile validation: %w", err)
	}
	if err := validate.RegisterTranslation("jsonfile", trans, func(ut ut.Translator) error {
		return ut.Add("jsonfile", "{0} must be a path to a .json file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("jsonfile", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register jsonfile translation: %w", err)
	}

	return validate, trans, nil
}

// isJSONFilePath accepts paths ending in .json that are not existing directories.
// The file itself does not need to exist yet.
func isJSONFilePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return !info.IsDir()
}
