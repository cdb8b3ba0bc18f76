package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vnkhanh/service-survey/scoring"
)

// RegisterValidators gắn các rule binding riêng vào validator của gin:
//   - rating: số nguyên trong [1, 5]
//   - itemid: chuỗi số nguyên dương (id câu hỏi)
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("rating", validateRating); err != nil {
		return err
	}
	return v.RegisterValidation("itemid", validateItemID)
}

func validateRating(fl validator.FieldLevel) bool {
	r := fl.Field().Int()
	return r >= scoring.MinRating && r <= scoring.MaxRating
}

func validateItemID(fl validator.FieldLevel) bool {
	n, err := strconv.ParseUint(strings.TrimSpace(fl.Field().String()), 10, 64)
	return err == nil && n > 0
}
