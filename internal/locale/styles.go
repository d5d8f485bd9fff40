package locale

// StyleFragment carries the direction-dependent style values a template or
// stylesheet needs. Start and End are the physical sides of the logical ones.
type StyleFragment struct {
	Dir             string
	TextAlign       string
	FlexDirection   string
	Start           string
	End             string
	MarginStart     string
	MarginEnd       string
	PaddingStart    string
	PaddingEnd      string
	ToastPosition   string
	ChevronPrevious string
	ChevronNext     string
}

// Styles is a pure mapping from direction to its style fragment.
func Styles(dir Direction) StyleFragment {
	if dir == RTL {
		return StyleFragment{
			Dir:             "rtl",
			TextAlign:       "right",
			FlexDirection:   "row-reverse",
			Start:           "right",
			End:             "left",
			MarginStart:     "margin-right",
			MarginEnd:       "margin-left",
			PaddingStart:    "padding-right",
			PaddingEnd:      "padding-left",
			ToastPosition:   "top-left",
			ChevronPrevious: "›",
			ChevronNext:     "‹",
		}
	}
	return StyleFragment{
		Dir:             "ltr",
		TextAlign:       "left",
		FlexDirection:   "row",
		Start:           "left",
		End:             "right",
		MarginStart:     "margin-left",
		MarginEnd:       "margin-right",
		PaddingStart:    "padding-left",
		PaddingEnd:      "padding-right",
		ToastPosition:   "top-right",
		ChevronPrevious: "‹",
		ChevronNext:     "›",
	}
}
