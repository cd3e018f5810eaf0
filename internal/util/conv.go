package util

import (
	"strconv"
)

// ParseUintOrZero convierte una cadena a uint, devolviendo 0 si falla; el
// 0 nunca es un ID válido y acaba en "no encontrado" aguas abajo.
func ParseUintOrZero(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
