package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// PayloadResult - статистика обработки выгрузки API.
type PayloadResult struct {
	Orders  int
	Skipped int
}

func (r PayloadResult) String() string {
	return fmt.Sprintf("%d orders / %d skipped", r.Orders, r.Skipped)
}

// PayloadOptions - параметры обработки выгрузки.
type PayloadOptions struct {
	// Strict - пропускать заказы, нарушающие инварианты сохранённого заказа
	// (нет id, стола или описания после нормализации).
	Strict bool
	// Now - время для createdAt по умолчанию (нулевое значение = time.Now()).
	Now time.Time
}

// NormalizeFile - читает ответ API (.json с любым конвертом или .jsonl) и пишет
// канонические заказы в writer, по одному JSON на строку.
func NormalizeFile(ctx context.Context, filePath string, format InputFormat, opts PayloadOptions, ow io.Writer) (PayloadResult, error) {
	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			// по умолчанию считаем JSON
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return PayloadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return NormalizeStream(ctx, file, format, opts, ow)
}

// NormalizeStream - то же для произвольного reader'а.
func NormalizeStream(ctx context.Context, ir io.Reader, format InputFormat, opts PayloadOptions, ow io.Writer) (PayloadResult, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch format {
	case FormatJSON, FormatAuto:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return PayloadResult{}, fmt.Errorf("read payload: %w", err)
		}
		recs, err := domain.DecodeRecords(raw)
		if err != nil {
			return PayloadResult{Skipped: 1}, err
		}
		var res PayloadResult
		for _, rec := range recs {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			if err := emit(ow, rec, opts, &res); err != nil {
				return res, err
			}
		}
		return res, nil

	case FormatJSONL:
		return normalizeJSONL(ctx, ir, opts, ow)

	default:
		return PayloadResult{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// normalizeJSONL - каждая непустая строка - запись или конверт; битые строки пропускаются.
func normalizeJSONL(ctx context.Context, ir io.Reader, opts PayloadOptions, ow io.Writer) (PayloadResult, error) {
	var res PayloadResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		recs, err := domain.DecodeRecords(line)
		if err != nil {
			res.Skipped++
			continue
		}
		for _, rec := range recs {
			if err := emit(ow, rec, opts, &res); err != nil {
				return res, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

func emit(ow io.Writer, rec map[string]any, opts PayloadOptions, res *PayloadResult) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	order := domain.NormalizeAt(rec, now)
	if opts.Strict && CheckPersisted(order) != nil {
		res.Skipped++
		return nil
	}
	line, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	line = append(line, '\n')
	if _, err := ow.Write(line); err != nil {
		return fmt.Errorf("write order: %w", err)
	}
	res.Orders++
	return nil
}

// CheckPersisted - инварианты заказа, уже сохранённого бэкендом.
func CheckPersisted(o domain.Order) error {
	switch {
	case o.ID <= 0:
		return fmt.Errorf("%w: id не назначен", ErrInvalidOrder)
	case o.Table == "" || o.Table == "0":
		return fmt.Errorf("%w: стол не указан", ErrInvalidOrder)
	case o.Items == "" || o.Items == domain.ItemsFallback:
		return fmt.Errorf("%w: описание не указано", ErrInvalidOrder)
	}
	return nil
}
