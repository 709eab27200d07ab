package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"hotels_api/internal/domain"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("request body is not valid JSON")

// decodeHotelInput collects name and address from the query string and the
// body, body values taking precedence. JSON and form encodings are accepted.
func decodeHotelInput(w http.ResponseWriter, r *http.Request) (domain.HotelInput, error) {
	q := r.URL.Query()
	in := domain.HotelInput{Name: q.Get("name"), Address: q.Get("address")}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if ct == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return in, errBadBody
			}
		} else if err := r.ParseForm(); err != nil {
			return in, errBadBody
		}
		if v, ok := r.PostForm["name"]; ok && len(v) > 0 {
			in.Name = v[0]
		}
		if v, ok := r.PostForm["address"]; ok && len(v) > 0 {
			in.Address = v[0]
		}
		return in, nil

	default:
		// anything else is read as JSON; an empty body is an empty payload
		var body struct {
			Name    *string `json:"name"`
			Address *string `json:"address"`
		}
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return in, errBadBody
		}
		if body.Name != nil {
			in.Name = *body.Name
		}
		if body.Address != nil {
			in.Address = *body.Address
		}
		return in, nil
	}
}
