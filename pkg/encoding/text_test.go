package encoding

import (
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func utf16(t *testing.T, s string, order unicode.Endianness) []byte {
	t.Helper()
	enc := unicode.UTF16(order, unicode.UseBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		t.Fatalf("encoding UTF-16: %v", err)
	}
	return out
}

func TestToUTF8(t *testing.T) {
	const line = "ATOM      1  N   GLY A   1"

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ascii", []byte(line), line},
		{"utf8 kept", []byte("REMARK Ångström"), "REMARK Ångström"},
		{"utf8 bom stripped", append([]byte{0xef, 0xbb, 0xbf}, line...), line},
		{"latin1", []byte("REMARK \xc5ngstr\xf6m"), "REMARK Ångström"},
		{"utf16 le", utf16(t, line, unicode.LittleEndian), line},
		{"utf16 be", utf16(t, line, unicode.BigEndian), line},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToUTF8(tt.data); got != tt.want {
				t.Errorf("ToUTF8() = %q, want %q", got, tt.want)
			}
		})
	}
}

