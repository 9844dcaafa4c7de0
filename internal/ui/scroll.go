package ui

// NearBottom reports whether a scroll position is within threshold
// rows of the end of the content. The boundary is inclusive: sitting
// exactly threshold rows from the bottom counts as near. A threshold
// of zero fires only at the exact bottom; a threshold larger than the
// content always fires.
func NearBottom(contentHeight, visibleHeight, scrollOffset, threshold int) bool {
	return contentHeight-scrollOffset-visibleHeight <= threshold
}
