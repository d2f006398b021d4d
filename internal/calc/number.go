package calc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Number - float64, который переживает JSON даже будучи NaN или бесконечностью.
// Конечные значения кодируются числом, остальные строками "NaN", "+Inf", "-Inf".
type Number float64

// numberFromFloat32 сохраняет кратчайшее десятичное представление float32,
// чтобы 0.1f не превращался в 0.10000000149011612.
func numberFromFloat32(f float32) Number {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return Number(f)
	}
	return Number(v)
}

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return errors.New("invalid number: null")
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// Float64 возвращает значение как float64
func (n Number) Float64() float64 {
	return float64(n)
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
