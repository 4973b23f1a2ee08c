package types

import (
	"fmt"
	"strings"
)

// SchemeType selects one of the one-step integration schemes
type SchemeType uint8

const (
	LaxFriedrichs SchemeType = iota
	LaxWendroff
	MethodOfCharacteristics
	RungeKutta2
)

var schemeNames = []string{
	"lax_friedrichs",
	"lax_wendroff",
	"method_of_characteristics",
	"rk2",
}

// SchemeNameMap accepts the canonical names plus the aliases found in
// configuration files and the HS_METHOD environment variable
var SchemeNameMap = map[string]SchemeType{
	"lax_friedrichs":            LaxFriedrichs,
	"laxfriedrichs":             LaxFriedrichs,
	"lf":                        LaxFriedrichs,
	"lax_wendroff":              LaxWendroff,
	"laxwendroff":               LaxWendroff,
	"lw":                        LaxWendroff,
	"method_of_characteristics": MethodOfCharacteristics,
	"characteristics":           MethodOfCharacteristics,
	"moc":                       MethodOfCharacteristics,
	"rk2":                       RungeKutta2,
	"runge_kutta_2":             RungeKutta2,
}

func (st SchemeType) String() string {
	if int(st) < len(schemeNames) {
		return schemeNames[st]
	}
	return fmt.Sprintf("SchemeType(%d)", st)
}

// CFLLimited reports whether the explicit step of the scheme is bounded by
// the CFL condition. Characteristics and pure ODE schemes are not.
func (st SchemeType) CFLLimited() bool {
	return st == LaxFriedrichs || st == LaxWendroff
}

func NewSchemeType(label string) (st SchemeType, err error) {
	var (
		ok bool
	)
	if st, ok = SchemeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: unknown scheme %q, available: %s",
			ErrInvalidArgument, label, strings.Join(schemeNames, ", "))
	}
	return
}

func SchemeNames() []string {
	names := make([]string, len(schemeNames))
	copy(names, schemeNames)
	return names
}
