package extract

import "testing"

func TestClassifyPlate(t *testing.T) {
	tests := []struct {
		cell  string
		kind  plateKind
		hit   bool
		atBat bool
	}{
		{"홈런", plateHomeRun, true, true},
		{"우홈", plateHomeRun, true, true},
		{"3루타", plateTriple, true, true},
		{"좌3", plateTriple, true, true},
		{"2루타", plateDouble, true, true},
		{"좌2", plateDouble, true, true},
		{"안타", plateSingle, true, true},
		{"내야안타", plateSingle, true, true},
		{"중안", plateSingle, true, true},
		{"볼넷", plateWalk, false, false},
		{"4구", plateWalk, false, false},
		{"고4", plateWalk, false, false},
		{"사구", plateHitByPitch, false, false},
		{"몸에맞는공", plateHitByPitch, false, false},
		{"희생플라이", plateSacFly, false, false},
		{"희플", plateSacFly, false, false},
		{"희생번트", plateSacBunt, false, false},
		{"희번", plateSacBunt, false, false},
		{"삼진", plateOut, false, true},
		{"유땅", plateOut, false, true},
		{"중비", plateOut, false, true},
		{"좌직", plateOut, false, true},
		{"파울플라이아웃", plateOut, false, true},
		{"병살타", plateOut, false, true},
		{"실책", plateOut, false, true},
		{"야수선택", plateOut, false, true},
		{"", plateUnknown, false, false},
		{"-", plateUnknown, false, false},
		{"대기", plateUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			kind := classifyPlate(tt.cell)
			if kind != tt.kind {
				t.Errorf("classifyPlate(%q) = %d, expected %d", tt.cell, kind, tt.kind)
			}
			if kind.isHit() != tt.hit {
				t.Errorf("isHit(%q) = %v, expected %v", tt.cell, kind.isHit(), tt.hit)
			}
			if kind.countsAtBat() != tt.atBat {
				t.Errorf("countsAtBat(%q) = %v, expected %v", tt.cell, kind.countsAtBat(), tt.atBat)
			}
		})
	}
}
