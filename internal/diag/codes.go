package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Разбор: парсер ничего не отвергает, только помечает
	SynInfo             Code = 2000
	SynDeprecatedRecord Code = 2001

	// Импорты
	ImpInfo           Code = 4000
	ImpNotFound       Code = 4001
	ImpCycle          Code = 4002
	ImpUnreadable     Code = 4003
	ImpDepthExceeded  Code = 4004
	ImpNestedProblem  Code = 4005
	ImpBinaryNoSource Code = 4006

	// Проверки поверх текста
	LntInfo       Code = 5000
	LntDeprecated Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		SynInfo:             "Syntax information",
		SynDeprecatedRecord: "Deprecated record declaration",
		ImpInfo:             "Import information",
		ImpNotFound:         "Imported file not found",
		ImpCycle:            "Cyclic import",
		ImpUnreadable:       "Imported file cannot be read",
		ImpDepthExceeded:    "Import chain too deep",
		ImpNestedProblem:    "Problem in imported file",
		ImpBinaryNoSource:   "Binary module has no source",
		LntInfo:             "Lint information",
		LntDeprecated:       "Deprecated construct",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IMP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LNT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
