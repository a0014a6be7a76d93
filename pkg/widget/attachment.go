package widget

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// EncodeAttachment builds an inline Attachment from raw bytes. The MIME type
// comes from the file extension when known, otherwise from content sniffing.
func EncodeAttachment(name string, data []byte) Attachment {
	return Attachment{
		Name: name,
		Type: detectMIME(name, data),
		Size: int64(len(data)),
		Data: base64.StdEncoding.EncodeToString(data),
	}
}

// AttachmentFromFile reads path and encodes it with EncodeAttachment.
func AttachmentFromFile(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("read attachment: %w", err)
	}
	return EncodeAttachment(filepath.Base(path), data), nil
}

func detectMIME(name string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return essence(byExt)
	}
	return essence(mimetype.Detect(data).String())
}

// essence drops MIME parameters such as "; charset=utf-8".
func essence(mt string) string {
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}
