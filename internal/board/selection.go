package board

// IsValidSelection reports whether c may be picked in the current guess.
// A refused selection is not a failure: the caller shows Reason.Message
// and asks again.
func (b *Board) IsValidSelection(c Coord) (bool, Reason) {
	if !b.InBounds(c) {
		return false, ReasonOutOfBounds
	}
	if b.at(c).FaceUp {
		return false, ReasonAlreadyFaceUp
	}
	return true, ReasonNone
}
