package shared

import (
	"strconv"
	"sync"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Object
// ═══════════════════════════════════════════════════════════════════════════

// ID - целочисленный идентификатор сущности, уникальный в пределах своей
// коллекции. Выдаётся при создании на основе текущего времени в миллисекундах
// и никогда не переиспользуется.
type ID int64

// IsValid проверяет, что ID положительный.
func (id ID) IsValid() bool {
	return id > 0
}

// Int64 возвращает значение как int64.
func (id ID) Int64() int64 {
	return int64(id)
}

// String возвращает строковое представление ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID разбирает строковое представление ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID выдаёт новый уникальный ID: текущее время в миллисекундах Unix.
// Если два вызова попадают в одну миллисекунду, второй получает lastID+1,
// поэтому коллизии внутри процесса исключены.
func NewID() ID {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return ID(now)
}

// ═══════════════════════════════════════════════════════════════════════════
// Date Value Object
// ═══════════════════════════════════════════════════════════════════════════

// DateLayout - формат календарной даты, используемый во всём домене.
const DateLayout = "2006-01-02"

// Date - календарная дата с точностью до дня в формате YYYY-MM-DD.
// Строковое представление выбрано намеренно: ISO-даты сравниваются
// лексикографически, что совпадает с хронологическим порядком.
type Date string

// IsValid проверяет, что дата разбирается по формату YYYY-MM-DD.
func (d Date) IsValid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// String возвращает строковое представление даты.
func (d Date) String() string {
	return string(d)
}

// Time возвращает полночь этой даты в указанной таймзоне.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, string(d), loc)
}

// Before сообщает, что d раньше other. Для ISO-дат достаточно
// лексикографического сравнения.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// OnOrAfter сообщает, что d не раньше other.
func (d Date) OnOrAfter(other Date) bool {
	return string(d) >= string(other)
}

// DateOf обрезает время до календарного дня.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}
