package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/pkg/validate"
)

func TestValidateNew_OK_TrimsFields(t *testing.T) {
	t.Parallel()

	v := validate.NewOrderValidator()
	in := &domain.NewOrder{Table: " 12 ", Items: "  1x Pizza Calabresa ", Note: " sem cebola "}
	if err := v.ValidateNew(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Table != "12" || in.Items != "1x Pizza Calabresa" || in.Note != "sem cebola" {
		t.Fatalf("fields must be trimmed in place, got %+v", in)
	}
}

func TestValidateNew_Rejects(t *testing.T) {
	t.Parallel()

	v := validate.NewOrderValidator()
	tests := []struct {
		name string
		in   *domain.NewOrder
	}{
		{"nil", nil},
		{"blank_table", &domain.NewOrder{Table: "   ", Items: "Pizza"}},
		{"blank_items", &domain.NewOrder{Table: "3", Items: " "}},
		{"table_too_long", &domain.NewOrder{Table: strings.Repeat("9", 17), Items: "Pizza"}},
		{"table_with_slash", &domain.NewOrder{Table: "1/2", Items: "Pizza"}},
		{"note_too_long", &domain.NewOrder{Table: "3", Items: "Pizza", Note: strings.Repeat("x", 501)}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.ValidateNew(context.Background(), tt.in)
			if !errors.Is(err, validate.ErrInvalidOrder) {
				t.Fatalf("want ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestValidateEdit_Status(t *testing.T) {
	t.Parallel()

	v := validate.NewOrderValidator()
	tests := []struct {
		status  domain.Status
		wantErr bool
	}{
		{"", false},
		{domain.StatusReceived, false},
		{domain.StatusInPreparation, false},
		{domain.StatusReady, false},
		{domain.StatusDelivered, true},
		{"Pronto", true},
	}
	for _, tt := range tests {
		edit := &domain.OrderEdit{Table: "5", Items: "Suco", Status: tt.status}
		err := v.ValidateEdit(context.Background(), edit)
		if (err != nil) != tt.wantErr {
			t.Fatalf("status %q: err=%v, wantErr=%v", tt.status, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, validate.ErrInvalidOrder) {
			t.Fatalf("status %q: want ErrInvalidOrder, got %v", tt.status, err)
		}
	}
}

func TestValidateTable(t *testing.T) {
	t.Parallel()

	v := validate.NewOrderValidator()
	if err := v.ValidateTable(context.Background(), " A1 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "  ", "a?b", "50%"} {
		if err := v.ValidateTable(context.Background(), bad); !errors.Is(err, validate.ErrInvalidOrder) {
			t.Fatalf("table %q: want ErrInvalidOrder, got %v", bad, err)
		}
	}
}
