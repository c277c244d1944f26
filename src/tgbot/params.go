package tgbot

import (
	"fmt"
	"io"
	"strconv"

	api "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Params holds the parameters of one Bot API method call, keyed by their
// wire names. Strings are sent as is, InputFile values are uploaded and
// everything else is JSON encoded. InputMedia values have their files
// attached to the upload.
type Params map[string]interface{}

// InputFile is a file to upload with a call. Exactly one of Reader, Bytes or
// Path should be set.
type InputFile struct {
	Name   string
	Reader io.Reader
	Bytes  []byte
	Path   string
}

func (f InputFile) requestData() api.RequestFileData {
	switch {
	case f.Reader != nil:
		return api.FileReader{Name: f.Name, Reader: f.Reader}
	case f.Bytes != nil:
		return api.FileBytes{Name: f.Name, Bytes: f.Bytes}
	default:
		return api.FilePath(f.Path)
	}
}

// Clone returns a shallow copy of p. A nil p yields an empty, non-nil Params.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ChatID returns the numeric chat_id parameter. Usernames such as
// "@channel" do not resolve.
func (p Params) ChatID() (int64, bool) {
	switch v := p["chat_id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	}
	return 0, false
}

// ChatRef returns the chat_id parameter as it identifies the chat: a numeric
// id as int64, or a "@username" string. Only a missing or empty chat_id does
// not resolve.
func (p Params) ChatRef() (interface{}, bool) {
	if id, ok := p.ChatID(); ok {
		return id, true
	}
	if username, ok := p["chat_id"].(string); ok && username != "" {
		return username, true
	}
	return nil, false
}

// attachMedia rewrites an InputMedia value so that files needing upload are
// referenced as attach://<name>, and returns those files.
func attachMedia(key string, v interface{}) (interface{}, []api.RequestFile, bool) {
	var files []api.RequestFile
	attach := func(field string, data api.RequestFileData) api.RequestFileData {
		if data == nil {
			return nil
		}
		if !data.NeedsUpload() {
			return api.FileID(data.SendData())
		}

		name := "file-" + key + field
		files = append(files, api.RequestFile{Name: name, Data: data})
		return api.FileID("attach://" + name)
	}

	switch m := v.(type) {
	case InputMediaPhoto:
		m.Media = attach("", m.Media)
		return m, files, true
	case InputMediaVideo:
		m.Media = attach("", m.Media)
		m.Thumb = attach("-thumb", m.Thumb)
		return m, files, true
	case InputMediaAnimation:
		m.Media = attach("", m.Media)
		m.Thumb = attach("-thumb", m.Thumb)
		return m, files, true
	case InputMediaAudio:
		m.Media = attach("", m.Media)
		m.Thumb = attach("-thumb", m.Thumb)
		return m, files, true
	case InputMediaDocument:
		m.Media = attach("", m.Media)
		m.Thumb = attach("-thumb", m.Thumb)
		return m, files, true
	}
	return nil, nil, false
}

// encode splits p into form values and files to upload.
func (p Params) encode() (api.Params, []api.RequestFile, error) {
	values := make(api.Params, len(p))
	var files []api.RequestFile

	for k, v := range p {
		switch v := v.(type) {
		case nil:
		case string:
			values.AddNonEmpty(k, v)
		case InputFile:
			files = append(files, api.RequestFile{Name: k, Data: v.requestData()})
		case *InputFile:
			if v != nil {
				files = append(files, api.RequestFile{Name: k, Data: v.requestData()})
			}
		default:
			if media, attached, ok := attachMedia(k, v); ok {
				v = media
				files = append(files, attached...)
			}
			if err := values.AddInterface(k, v); err != nil {
				return nil, nil, fmt.Errorf("encode %s: %w", k, err)
			}
		}
	}

	return values, files, nil
}
