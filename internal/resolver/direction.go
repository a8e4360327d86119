package resolver

import "golang.org/x/text/language"

// Dir is a text layout direction.
type Dir string

const (
	LTR Dir = "ltr"
	RTL Dir = "rtl"
)

var rtlScripts = map[string]struct{}{
	"Arab": {},
	"Hebr": {},
	"Thaa": {},
	"Syrc": {},
	"Nkoo": {},
	"Adlm": {},
	"Rohg": {},
}

// Direction returns RTL when the likely script of lang is written right to
// left. Unparseable codes are LTR.
func Direction(lang string) Dir {
	tag, err := language.Parse(lang)
	if err != nil {
		return LTR
	}
	script, conf := tag.Script()
	if conf == language.No {
		return LTR
	}
	if _, ok := rtlScripts[script.String()]; ok {
		return RTL
	}
	return LTR
}
