package widgets

const maskedAccessCode = "••••••••"

// MaskAccessCode hides the code unless revealed. The mask has a fixed
// length.
func MaskAccessCode(code string, revealed bool) string {
	switch {
	case code == "":
		return "Not set"
	case revealed:
		return code
	}
	return maskedAccessCode
}
