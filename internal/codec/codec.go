// Package codec реализует бинарный формат файла инвентаря.
//
// Формат (little endian):
//
//	magic   "CDINV"
//	version uint8
//	count   uint32
//	count × { id int64, titleLen uint32, title, artistLen uint32, artist }
//	crc     uint32 (crc32 IEEE всех предыдущих байт)
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hazadus/cdinventory/internal/data"
)

const (
	// Version текущая версия формата
	Version uint8 = 1

	// maxFieldLen ограничивает длину строкового поля
	maxFieldLen = 1 << 20
)

var magic = []byte("CDINV")

var (
	// ErrCorrupt возвращается, если содержимое не является корректным файлом инвентаря
	ErrCorrupt = errors.New("некорректный файл инвентаря")
	// ErrFieldTooLong возвращается при записи поля длиннее допустимого
	ErrFieldTooLong = errors.New("поле диска слишком длинное")
)

// Encode сериализует записи целиком. Записи с полями длиннее maxFieldLen байт
// не сериализуются, так как Decode их не примет.
func Encode(records []data.Record) ([]byte, error) {
	for i, r := range records {
		if len(r.Title) > maxFieldLen || len(r.Artist) > maxFieldLen {
			return nil, fmt.Errorf("%w: запись %d (ID %d), допустимо %d байт", ErrFieldTooLong, i, r.ID, maxFieldLen)
		}
	}

	var buf bytes.Buffer
	buf.Write(magic)
	buf.WriteByte(Version)

	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(records)))
	buf.Write(scratch[:4])

	for _, r := range records {
		binary.LittleEndian.PutUint64(scratch[:], uint64(int64(r.ID)))
		buf.Write(scratch[:])
		writeString(&buf, r.Title)
		writeString(&buf, r.Artist)
	}

	binary.LittleEndian.PutUint32(scratch[:4], crc32.ChecksumIEEE(buf.Bytes()))
	buf.Write(scratch[:4])
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	buf.Write(n[:])
	buf.WriteString(s)
}

// Decode разбирает содержимое файла инвентаря. Любая ошибка оборачивает ErrCorrupt.
func Decode(raw []byte) ([]data.Record, error) {
	headerLen := len(magic) + 1 + 4
	if len(raw) < headerLen+4 {
		return nil, fmt.Errorf("%w: файл слишком короткий (%d байт)", ErrCorrupt, len(raw))
	}
	if !bytes.Equal(raw[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: неверная сигнатура", ErrCorrupt)
	}
	if v := raw[len(magic)]; v != Version {
		return nil, fmt.Errorf("%w: неподдерживаемая версия %d", ErrCorrupt, v)
	}

	body := raw[:len(raw)-4]
	storedCRC := binary.LittleEndian.Uint32(raw[len(raw)-4:])
	if crc32.ChecksumIEEE(body) != storedCRC {
		return nil, fmt.Errorf("%w: несовпадение контрольной суммы", ErrCorrupt)
	}

	r := bytes.NewReader(body[len(magic)+1:])
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	records := make([]data.Record, 0, min(int(count), 1024))
	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: запись %d: %v", ErrCorrupt, i, err)
		}
		records = append(records, rec)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: лишние байты после записей (%d)", ErrCorrupt, r.Len())
	}
	return records, nil
}

func readRecord(r *bytes.Reader) (data.Record, error) {
	var id int64
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return data.Record{}, err
	}
	title, err := readString(r)
	if err != nil {
		return data.Record{}, err
	}
	artist, err := readString(r)
	if err != nil {
		return data.Record{}, err
	}
	return data.Record{ID: int(id), Title: title, Artist: artist}, nil
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxFieldLen {
		return "", fmt.Errorf("длина поля %d превышает допустимую", n)
	}
	if int(n) > r.Len() {
		return "", io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
