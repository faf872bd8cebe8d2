package ir

import "strings"

var initialisms = map[string]string{
	"id":   "ID",
	"ip":   "IP",
	"crc":  "CRC",
	"url":  "URL",
	"uuid": "UUID",
	"tcp":  "TCP",
	"udp":  "UDP",
	"utf8": "UTF8",
}

// GoName converts a description identifier such as msg_id or packetLen into
// an exported Go identifier (MsgID, PacketLen).
func GoName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if up, ok := initialisms[strings.ToLower(part)]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return "X" + name
	}
	return b.String()
}

// reserved are the exported methods generated on every record.
var reserved = map[string]bool{
	"EncodeBE":                   true,
	"EncodeLE":                   true,
	"DecodeBE":                   true,
	"DecodeLE":                   true,
	"ToBEBytes":                  true,
	"ToLEBytes":                  true,
	"FieldSize":                  true,
	"EncodedSize":                true,
	"EncodeBERaw":                true,
	"EncodeLERaw":                true,
	"SupportsRawPointerEncoding": true,
	"OptimalSerializationMethod": true,
	"Marshal":                    true,
	"Unmarshal":                  true,
}

// IsReserved reports whether a Go field name would collide with a
// generated method.
func IsReserved(goName string) bool {
	return reserved[goName]
}
