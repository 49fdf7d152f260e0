package rules

// minorAllies lists, per minor power, the major powers it may ally with.
// Pairs of majors may always ally; pairs of minors never may.
var minorAllies = map[Power][]Power{
	Genoa:    {Hapsburg, France, Papacy},
	Hungary:  {Hapsburg},
	Scotland: {France, England},
	Venice:   {Hapsburg, Papacy},
}

// lockedAlliances lists minors whose alliances, once formed, cannot be
// dropped unilaterally by the major partner.
var lockedAlliances = map[Power]bool{
	Hungary: true,
}

// CanAlly reports whether two powers are permitted to form an alliance.
// Major/major pairs always may; minor/minor pairs never may; a mixed pair
// is allowed only if the minor's alliance table lists the major.
func CanAlly(p1, p2 Power) bool {
	if p1 == p2 {
		return false
	}
	if IsMajor(p1) && IsMajor(p2) {
		return true
	}
	if IsMinor(p1) && IsMinor(p2) {
		return false
	}
	minor, major := p1, p2
	if IsMajor(p1) {
		minor, major = p2, p1
	}
	for _, allowed := range minorAllies[minor] {
		if allowed == major {
			return true
		}
	}
	return false
}

// CanBreakAlliance reports whether an existing alliance between the two
// powers may be removed. Alliances with some minors are binding.
func CanBreakAlliance(p1, p2 Power) bool {
	return !lockedAlliances[p1] && !lockedAlliances[p2]
}
