package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/hanoivibes/jobport/errors"
)

// multipartBody builds a replayable multipart body: one JSON part named
// jsonField carrying payload, followed by one file part per upload under
// fileField. The JSON part is written with an application/json content type,
// matching what the backend's @RequestPart binding expects.
func multipartBody(jsonField string, payload any, fileField string, uploads []Upload) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to encode %s part", jsonField)
		}

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+jsonField+`"`)
		header.Set("Content-Type", "application/json")
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to create %s part", jsonField)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", errors.Wrapf(err, "failed to write %s part", jsonField)
		}

		for _, upload := range uploads {
			fw, err := w.CreateFormFile(fileField, upload.FileName)
			if err != nil {
				return nil, "", errors.Wrapf(err, "failed to create file part %s", upload.FileName)
			}
			if _, err := fw.Write(upload.Content); err != nil {
				return nil, "", errors.Wrapf(err, "failed to write file part %s", upload.FileName)
			}
		}

		if err := w.Close(); err != nil {
			return nil, "", errors.Wrap(err, "failed to finalize multipart body")
		}

		return &buf, w.FormDataContentType(), nil
	}
}

// fileBody builds a replayable single-file multipart body (avatar and image
// uploads)
func fileBody(fileField string, upload Upload) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		fw, err := w.CreateFormFile(fileField, upload.FileName)
		if err != nil {
			return nil, "", errors.Wrapf(err, "failed to create file part %s", upload.FileName)
		}
		if _, err := fw.Write(upload.Content); err != nil {
			return nil, "", errors.Wrapf(err, "failed to write file part %s", upload.FileName)
		}

		if err := w.Close(); err != nil {
			return nil, "", errors.Wrap(err, "failed to finalize multipart body")
		}

		return &buf, w.FormDataContentType(), nil
	}
}
