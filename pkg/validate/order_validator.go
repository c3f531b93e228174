package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderInputValidator.
var _ ports.OrderInputValidator = (*OrderValidator)(nil)

// ErrInvalidOrder - базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

const tableRule = "required,max=16,excludesall=/?#%"

// OrderValidator - проверка входных данных заказа перед запросом к API.
// Строки предварительно обрезаются по краям; пустые стол и описание недопустимы,
// иначе бэкенд сохранит заказ, который нормализатор покажет как стол "0".
type OrderValidator struct {
	v *validator.Validate
}

// NewOrderValidator - конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// статус в правке: только активные статусы, Delivered достигается лишь продвижением
	_ = v.RegisterValidation("active_status", func(fl validator.FieldLevel) bool {
		s := domain.Status(fl.Field().String())
		return s.Valid() && !s.IsTerminal()
	})
	return &OrderValidator{v: v}
}

// ValidateNew - проверка нового заказа; поля нормализуются на месте.
func (ov *OrderValidator) ValidateNew(_ context.Context, in *domain.NewOrder) error {
	if in == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	in.Table = strings.TrimSpace(in.Table)
	in.Items = strings.TrimSpace(in.Items)
	in.Note = strings.TrimSpace(in.Note)
	if err := ov.v.Struct(in); err != nil {
		return wrap(err)
	}
	return ov.checkTable(in.Table)
}

// ValidateEdit - проверка правки заказа; статус, если передан, должен быть активным.
func (ov *OrderValidator) ValidateEdit(_ context.Context, edit *domain.OrderEdit) error {
	if edit == nil {
		return fmt.Errorf("%w: правка не может быть nil", ErrInvalidOrder)
	}
	edit.Table = strings.TrimSpace(edit.Table)
	edit.Items = strings.TrimSpace(edit.Items)
	edit.Note = strings.TrimSpace(edit.Note)
	if err := ov.v.Struct(edit); err != nil {
		return wrap(err)
	}
	return ov.checkTable(edit.Table)
}

// ValidateTable - идентификатор стола для запроса по столу.
func (ov *OrderValidator) ValidateTable(_ context.Context, table string) error {
	return ov.checkTable(strings.TrimSpace(table))
}

func (ov *OrderValidator) checkTable(table string) error {
	if err := ov.v.Var(table, tableRule); err != nil {
		return wrap(err, "table")
	}
	return nil
}

// wrap - ValidationErrors -> ErrInvalidOrder с перечнем полей.
func wrap(err error, field ...string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" && len(field) > 0 {
			name = field[0]
		}
		parts = append(parts, fmt.Sprintf("%s: правило %q", strings.ToLower(name), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOrder, strings.Join(parts, "; "))
}
