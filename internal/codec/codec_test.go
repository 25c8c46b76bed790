package codec

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"reflect"
	"strings"
	"testing"

	"github.com/hazadus/cdinventory/internal/data"
)

func mustEncode(t *testing.T, records []data.Record) []byte {
	t.Helper()
	raw, err := Encode(records)
	if err != nil {
		t.Fatalf("Неожиданная ошибка кодирования: %v", err)
	}
	return raw
}

func TestEncodeDecodePreservesOrder(t *testing.T) {
	records := []data.Record{
		{ID: 2, Title: "Rumours", Artist: "Fleetwood Mac"},
		{ID: 1, Title: "Abbey Road", Artist: "The Beatles"},
		{ID: 1, Title: "Дубликат", Artist: "Кино"},
		{ID: -5, Title: "", Artist: ""},
	}

	decoded, err := Decode(mustEncode(t, records))
	if err != nil {
		t.Fatalf("Неожиданная ошибка декодирования: %v", err)
	}
	if !reflect.DeepEqual(decoded, records) {
		t.Errorf("Ожидалось %+v, получено %+v", records, decoded)
	}
}

func TestDecodeEmptyTable(t *testing.T) {
	decoded, err := Decode(mustEncode(t, nil))
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Ожидался пустой список, получено %d записей", len(decoded))
	}
}

// reseal пересчитывает контрольную сумму после ручной правки тела
func reseal(raw []byte) []byte {
	body := raw[:len(raw)-4]
	binary.LittleEndian.PutUint32(raw[len(raw)-4:], crc32.ChecksumIEEE(body))
	return raw
}

func TestDecodeRejectsCorruptInput(t *testing.T) {
	valid := mustEncode(t, []data.Record{{ID: 1, Title: "Abbey Road", Artist: "The Beatles"}})

	tests := []struct {
		name string
		raw  func() []byte
	}{
		{"Empty", func() []byte { return nil }},
		{"TooShort", func() []byte { return []byte("CDI") }},
		{"WrongMagic", func() []byte {
			raw := append([]byte(nil), valid...)
			copy(raw, "PICKL")
			return reseal(raw)
		}},
		{"UnknownVersion", func() []byte {
			raw := append([]byte(nil), valid...)
			raw[5] = 99
			return reseal(raw)
		}},
		{"BadChecksum", func() []byte {
			raw := append([]byte(nil), valid...)
			raw[len(raw)-6] ^= 0xFF
			return raw
		}},
		{"Truncated", func() []byte {
			raw := append([]byte(nil), valid[:len(valid)-8]...)
			raw = append(raw, 0, 0, 0, 0)
			return reseal(raw)
		}},
		{"CountTooLarge", func() []byte {
			raw := append([]byte(nil), valid...)
			binary.LittleEndian.PutUint32(raw[6:10], 5)
			return reseal(raw)
		}},
		{"TrailingBytes", func() []byte {
			raw := append([]byte(nil), valid[:len(valid)-4]...)
			raw = append(raw, 0xAA, 0, 0, 0, 0)
			return reseal(raw)
		}},
		{"PlainText", func() []byte { return []byte("this is not an inventory file at all") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw())
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Ожидалась ошибка ErrCorrupt, получено: %v", err)
			}
		})
	}
}

func TestEncodeHeader(t *testing.T) {
	raw := mustEncode(t, []data.Record{{ID: 1}})
	if string(raw[:5]) != "CDINV" {
		t.Errorf("Ожидалась сигнатура CDINV, получено %q", raw[:5])
	}
	if raw[5] != Version {
		t.Errorf("Ожидалась версия %d, получено %d", Version, raw[5])
	}
	if n := binary.LittleEndian.Uint32(raw[6:10]); n != 1 {
		t.Errorf("Ожидалось количество записей 1, получено %d", n)
	}
}

func TestEncodeRejectsOversizedField(t *testing.T) {
	tests := []struct {
		name   string
		record data.Record
	}{
		{"Title", data.Record{ID: 1, Title: strings.Repeat("x", maxFieldLen+1)}},
		{"Artist", data.Record{ID: 2, Artist: strings.Repeat("я", maxFieldLen/2+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode([]data.Record{{ID: 0, Title: "ok"}, tt.record})
			if !errors.Is(err, ErrFieldTooLong) {
				t.Fatalf("Ожидалась ошибка ErrFieldTooLong, получено: %v", err)
			}
			if raw != nil {
				t.Error("При ошибке не должно возвращаться содержимое")
			}
		})
	}

	// Поле максимальной длины проходит туда и обратно
	limit := []data.Record{{ID: 3, Title: strings.Repeat("x", maxFieldLen)}}
	decoded, err := Decode(mustEncode(t, limit))
	if err != nil {
		t.Fatalf("Поле допустимой длины должно читаться: %v", err)
	}
	if !reflect.DeepEqual(decoded, limit) {
		t.Error("Поле допустимой длины прочитано с искажениями")
	}
}
