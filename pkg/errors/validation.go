package errors

import (
	"regexp"
	"strings"
)

// ReservedParentID refers to the container in anchor references.
const ReservedParentID = "parent"

// MaxIDLength bounds box and guideline IDs.
const MaxIDLength = 128

// idPattern matches IDs that survive anchor references ("title.right"), cache
// keys and DOT node names without quoting.
var idPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateBoxID checks a box or guideline ID: non-empty, at most
// [MaxIDLength] bytes, letters, digits, '_' and '-' only, not starting with a
// digit or '-', and not the reserved container name.
func ValidateBoxID(id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidScene, "box id cannot be empty")
	case len(id) > MaxIDLength:
		return New(ErrCodeInvalidScene, "box id too long (max %d characters)", MaxIDLength)
	case id == ReservedParentID:
		return New(ErrCodeInvalidScene, "box id %q is reserved for the container", id).In(id)
	case !idPattern.MatchString(id):
		return New(ErrCodeInvalidScene, "invalid box id: %q", id).In(id)
	}
	return nil
}

// ValidateAnchorRef splits a "<box>.<side>" reference. The box part must be a
// valid ID or "parent". The side is not checked against the anchor names here;
// the scene loader does that knowing which side it connects from.
func ValidateAnchorRef(ref string) (box, side string, err error) {
	box, side, ok := strings.Cut(ref, ".")
	if !ok || box == "" || side == "" || strings.Contains(side, ".") {
		return "", "", New(ErrCodeInvalidAnchor, "anchor reference %q must look like <box>.<side>", ref)
	}
	if box != ReservedParentID {
		if err := ValidateBoxID(box); err != nil {
			return "", "", Wrap(ErrCodeInvalidAnchor, err, "anchor reference %q", ref)
		}
	}
	return box, side, nil
}
