package server

import (
	"encoding/json"

	"github.com/chimekit/chime/common"
)

type Response struct {
	Ok      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	Code    common.ErrorCode `json:"code,omitempty"`
	Message json.RawMessage  `json:"message,omitempty"`
}

func MakeResult(res any) []byte {
	msg, _ := json.Marshal(res)
	b, _ := json.Marshal(Response{
		Ok:      true,
		Message: msg,
	})
	return b
}

func InitError(err error) []byte {
	if err == nil {
		return CreateError(common.ErrInternal, "unknown error")
	}
	return CreateError(common.CodeOf(err), err.Error())
}

func CreateError(code common.ErrorCode, desc string) []byte {
	b, _ := json.Marshal(Response{
		Ok:    false,
		Error: desc,
		Code:  code,
	})
	return b
}
