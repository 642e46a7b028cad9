package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

// languageSeeds cover every construct the parser knows plus the
// unterminated forms the lexer has to survive.
var languageSeeds = []string{
	"import BankInter, \"rsexts.d32\";\n",
	"var a = 1, b: string = \"x\";\nconst C = 10;\n",
	"record Acc(account) dialog;\n",
	"class (Base) Point(x, y)\n  var x;\n  macro Move(dx: integer)\n  end\nend\n",
	"private macro Sum(a, b): integer\n  return a + b;\nend\n",
	"macro M()\n  for (var i, 0, 10)\n    if (i == 2) break; end\n  end\n  while (true) onerror end\nend\n",
	"// comment\n/* block\n   comment */ var z = TArray;\nz.Size;\n",
	"var s = \"unterminated\n",
	"/* unterminated block",
	"macro Broken(\n",
	"class C\n macro\nend\n",
	"var x = 'одинарные кавычки';\nx.",
	"cpdos cpwin local file array with elif else not and or",
	"end end end\n",
	"",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
