package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Body encodes a request payload and reports the content type to send with it.
type Body interface {
	Encode() (io.Reader, string, error)
}

type JSONBody struct {
	Value interface{}
}

func (b JSONBody) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	return bytes.NewReader(data), "application/json", nil
}

// Upload is a file attached to a multipart form.
type Upload struct {
	Filename string
	Content  []byte
}

type FormField struct {
	Name  string
	Value string
}

type FormFile struct {
	Name   string
	Upload Upload
}

// MultipartBody keeps field order so upstream services see fields as the form declares them.
type MultipartBody struct {
	Fields []FormField
	Files  []FormFile
}

func (b *MultipartBody) Add(name, value string) {
	b.Fields = append(b.Fields, FormField{Name: name, Value: value})
}

func (b *MultipartBody) Attach(name string, upload *Upload) {
	if upload == nil || len(upload.Content) == 0 {
		return
	}
	b.Files = append(b.Files, FormFile{Name: name, Upload: *upload})
}

// Encode writes the form; the content type (with its boundary) always comes from the writer.
func (b *MultipartBody) Encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, field := range b.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.Name, err)
		}
	}

	for _, file := range b.Files {
		part, err := writer.CreateFormFile(file.Name, file.Upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", file.Name, err)
		}
		if _, err := part.Write(file.Upload.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
