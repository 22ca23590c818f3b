package symmetry

// Seed generators for the built in space groups in International Tables
// x,y,z notation. Full operation lists are built by Closure on init.
// Settings: unique axis b for monoclinic groups, origin choice 2 for
// Fd-3m, hexagonal axes for R groups with the rhombohedral axes setting
// registered at 1000+number.

var (
	centreC = "x+1/2,y+1/2,z"
	centreI = "x+1/2,y+1/2,z+1/2"
	centreR = "x+2/3,y+1/3,z+1/3"
	centreA = "x,y+1/2,z+1/2"
	centreB = "x+1/2,y,z+1/2"
)

var builtinGroups = []struct {
	number int
	symbol string
	seeds  []string
}{
	{1, "P1", nil},
	{2, "P-1", []string{"-x,-y,-z"}},
	{4, "P2_1", []string{"-x,y+1/2,-z"}},
	{5, "C2", []string{"-x,y,-z", centreC}},
	{12, "C2/m", []string{"-x,y,-z", "-x,-y,-z", centreC}},
	{14, "P2_1/c", []string{"-x,y+1/2,-z+1/2", "-x,-y,-z"}},
	{19, "P2_12_12_1", []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z+1/2"}},
	{47, "Pmmm", []string{"-x,-y,z", "-x,y,-z", "-x,-y,-z"}},
	{62, "Pnma", []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z", "-x,-y,-z"}},
	{63, "Cmcm", []string{"-x,-y,z+1/2", "-x,y,-z+1/2", "-x,-y,-z", centreC}},
	{69, "Fmmm", []string{"-x,-y,z", "-x,y,-z", "-x,-y,-z", centreA, centreB}},
	{71, "Immm", []string{"-x,-y,z", "-x,y,-z", "-x,-y,-z", centreI}},
	{123, "P4/mmm", []string{"-y,x,z", "-x,y,-z", "-x,-y,-z"}},
	{136, "P4_2/mnm", []string{"-y+1/2,x+1/2,z+1/2", "-x+1/2,y+1/2,-z+1/2", "-x,-y,-z"}},
	{139, "I4/mmm", []string{"-y,x,z", "-x,y,-z", "-x,-y,-z", centreI}},
	{146, "R3", []string{"-y,x-y,z", centreR}},
	{148, "R-3", []string{"-y,x-y,z", "-x,-y,-z", centreR}},
	{155, "R32", []string{"-y,x-y,z", "y,x,-z", centreR}},
	{160, "R3m", []string{"-y,x-y,z", "-y,-x,z", centreR}},
	{161, "R3c", []string{"-y,x-y,z", "-y,-x,z+1/2", centreR}},
	{166, "R-3m", []string{"-y,x-y,z", "y,x,-z", "-x,-y,-z", centreR}},
	{167, "R-3c", []string{"-y,x-y,z", "y,x,-z+1/2", "-x,-y,-z", centreR}},
	{186, "P6_3mc", []string{"x-y,x,z+1/2", "-y,-x,z"}},
	{191, "P6/mmm", []string{"x-y,x,z", "y,x,-z", "-x,-y,-z"}},
	{194, "P6_3/mmc", []string{"x-y,x,z+1/2", "y,x,-z", "-x,-y,-z"}},
	{195, "P23", []string{"-x,-y,z", "-x,y,-z", "z,x,y"}},
	{200, "Pm-3", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "-x,-y,-z"}},
	{215, "P-43m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z"}},
	{216, "F-43m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z", centreA, centreB}},
	{217, "I-43m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,z", centreI}},
	{221, "Pm-3m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,-z", "-x,-y,-z"}},
	{225, "Fm-3m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,-z", "-x,-y,-z", centreA, centreB}},
	{227, "Fd-3m", []string{"-x+3/4,-y+1/4,z+1/2", "-x+1/4,y+1/2,-z+3/4", "z,x,y", "y+3/4,x+1/4,-z+1/2", "-x,-y,-z", centreA, centreB}},
	{229, "Im-3m", []string{"-x,-y,z", "-x,y,-z", "z,x,y", "y,x,-z", "-x,-y,-z", centreI}},

	// Rhombohedral axes settings.
	{1146, "R3:R", []string{"z,x,y"}},
	{1148, "R-3:R", []string{"z,x,y", "-x,-y,-z"}},
	{1155, "R32:R", []string{"z,x,y", "-y,-x,-z"}},
	{1160, "R3m:R", []string{"z,x,y", "y,x,z"}},
	{1161, "R3c:R", []string{"z,x,y", "y+1/2,x+1/2,z+1/2"}},
	{1166, "R-3m:R", []string{"z,x,y", "-y,-x,-z", "-x,-y,-z"}},
	{1167, "R-3c:R", []string{"z,x,y", "-y+1/2,-x+1/2,-z+1/2", "-x,-y,-z"}},
}
