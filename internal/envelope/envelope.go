// Package envelope narrows upstream response envelopes into the shapes the
// UI consumes.
//
// Presence and type checks run on the raw bytes with gjson so that a
// missing field is never confused with a zero value. The payload that is
// finally returned (items, data) is the upstream's own JSON, untouched.
package envelope

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/aanand-mishra/library-proxy/internal/types"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
)

var validate = validator.New()

// Table narrows a paginated envelope {page,size,totalPages,totalItems,items}
// to {totalPages,totalItems,items}. Every item must decode into T (a
// struct) and pass its validate tags.
func Table[T any](raw []byte) (types.Table, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return types.Table{}, err
	}

	totalPages, err := count(doc, "totalPages")
	if err != nil {
		return types.Table{}, err
	}
	totalItems, err := count(doc, "totalItems")
	if err != nil {
		return types.Table{}, err
	}

	items := doc.Get("items")
	if !items.IsArray() {
		return types.Table{}, malformed("items is missing or not an array")
	}

	// size is optional; a reported size of 0 carries no bound.
	if doc.Get("size").Exists() {
		size, err := count(doc, "size")
		if err != nil {
			return types.Table{}, err
		}
		if n := len(items.Array()); size > 0 && n > size {
			return types.Table{}, malformed("items has %d entries, size is %d", n, size)
		}
	}

	var records []T
	if err := json.Unmarshal([]byte(items.Raw), &records); err != nil {
		return types.Table{}, malformed("items: %v", err)
	}
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return types.Table{}, malformed("items[%d]: %v", i, err)
		}
	}

	return types.Table{
		TotalPages: totalPages,
		TotalItems: totalItems,
		Items:      json.RawMessage(items.Raw),
	}, nil
}

// Data unwraps the data member of a generic envelope
// {success,message,data,errors,meta}. The data object must decode into T
// (a struct) and pass its validate tags. An envelope with success=false
// yields upstream.ErrUnsuccessful.
func Data[T any](raw []byte) (json.RawMessage, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	if success := doc.Get("success"); success.Exists() {
		if success.Type != gjson.True && success.Type != gjson.False {
			return nil, malformed("success is not a boolean")
		}
		if !success.Bool() {
			msg := doc.Get("message").String()
			if msg == "" {
				msg = "no message"
			}
			return nil, fmt.Errorf("%w: %s", upstream.ErrUnsuccessful, msg)
		}
	}

	data := doc.Get("data")
	if !data.IsObject() {
		return nil, malformed("data is missing or not an object")
	}

	var v T
	if err := json.Unmarshal([]byte(data.Raw), &v); err != nil {
		return nil, malformed("data: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return nil, malformed("data: %v", err)
	}

	return json.RawMessage(data.Raw), nil
}

// StudentFullNames sets full_name on every student item that lacks one,
// derived with types.Student.FullName. Other members are left as sent.
func StudentFullNames(items json.RawMessage) (json.RawMessage, error) {
	out := []byte(items)
	for i, item := range gjson.ParseBytes(items).Array() {
		if item.Get("full_name").Exists() {
			continue
		}
		var s types.Student
		if err := json.Unmarshal([]byte(item.Raw), &s); err != nil {
			return nil, malformed("items[%d]: %v", i, err)
		}
		var err error
		out, err = sjson.SetBytes(out, strconv.Itoa(i)+".full_name", s.FullName())
		if err != nil {
			return nil, fmt.Errorf("envelope.StudentFullNames: items[%d]: %w", i, err)
		}
	}
	return json.RawMessage(out), nil
}

// Problem extracts message and field errors from an upstream error body.
// Bodies that are not JSON objects yield zero values.
func Problem(raw []byte) (string, map[string][]string) {
	if !gjson.ValidBytes(raw) {
		return "", nil
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", nil
	}

	var fields map[string][]string
	doc.Get("errors").ForEach(func(key, value gjson.Result) bool {
		if fields == nil {
			fields = make(map[string][]string)
		}
		if value.IsArray() {
			for _, m := range value.Array() {
				fields[key.String()] = append(fields[key.String()], m.String())
			}
		} else {
			fields[key.String()] = append(fields[key.String()], value.String())
		}
		return true
	})

	return doc.Get("message").String(), fields
}

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, malformed("body is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}, malformed("body is not a JSON object")
	}
	return doc, nil
}

// count reads a required non-negative integer member.
func count(doc gjson.Result, key string) (int, error) {
	r := doc.Get(key)
	if !r.Exists() {
		return 0, malformed("%s is missing", key)
	}
	if r.Type != gjson.Number {
		return 0, malformed("%s is not a number", key)
	}
	n, err := strconv.Atoi(r.Raw)
	if err != nil || n < 0 {
		return 0, malformed("%s is not a non-negative integer", key)
	}
	return n, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", upstream.ErrMalformedResponse, fmt.Sprintf(format, args...))
}
