package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldErrors собирает ошибки биндинга в map поле -> список сообщений,
// как их ожидает клиент: {"errors": {"email": ["..."]}}
func fieldErrors(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := snakeCase(fe.Field())
		out[name] = append(out[name], fieldMessage(name, fe))
	}
	return out, true
}

func fieldMessage(name string, fe validator.FieldError) string {
	label := strings.ReplaceAll(name, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondBindError отвечает 422 с ошибками валидации по полям
// либо общим сообщением, если тело запроса не распарсилось
func respondBindError(c *gin.Context, err error) {
	if fields, ok := fieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": fields})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid request body"})
}

func respondFieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"errors":  map[string][]string{field: {message}},
	})
}
