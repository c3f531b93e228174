package httpx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrBadParam - параметр пути не разобран.
var ErrBadParam = errors.New("bad path parameter")

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseOrderID - положительный id заказа из параметра пути.
func ParseOrderID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadParam
	}
	return id, nil
}

// ParseTable - идентификатор стола из параметра пути (без пробелов по краям).
func ParseTable(c *gin.Context, name string) (string, error) {
	table := strings.TrimSpace(c.Param(name))
	if table == "" {
		return "", ErrBadParam
	}
	return table, nil
}

// ParseIntQuery - целое из query с дефолтом и границами [lo, hi].
func ParseIntQuery(c *gin.Context, key string, def, lo, hi int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return ClampInt(v, lo, hi)
}
