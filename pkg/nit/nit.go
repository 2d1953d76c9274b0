// Package nit dígito de verificación del NIT colombiano (módulo 11, Orden Administrativa 4 de 1989).
package nit

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalid NIT mal formado o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("nit inválido")

// pesos aplicados a los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// CheckDigit calcula el dígito de verificación de los 9 dígitos base.
func CheckDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) != 9 {
		return 0, fmt.Errorf("%w: se esperan 9 dígitos base, se encontraron %d", ErrInvalid, len(digits))
	}
	return checkDigit(digits), nil
}

// Normalize acepta "900123456", "900.123.456-7" o "9001234567" y devuelve "900123456-7".
// Con 9 dígitos completa el dígito de verificación; con 10 lo valida.
func Normalize(taxID string) (string, error) {
	digits := extractDigits(taxID)
	switch len(digits) {
	case 9:
		return string(digits) + "-" + string(checkDigit(digits)), nil
	case 10:
		want := checkDigit(digits[:9])
		if digits[9] != want {
			return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %c", ErrInvalid, want, digits[9])
		}
		return string(digits[:9]) + "-" + string(want), nil
	default:
		return "", fmt.Errorf("%w: se esperan 9 o 10 dígitos, se encontraron %d", ErrInvalid, len(digits))
	}
}

func checkDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
