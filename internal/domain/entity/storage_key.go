package entity

import "fmt"

// OutputKeyFor builds the storage key for a generation's output image.
// Re-running the same generation overwrites the same object.
func OutputKeyFor(generationID uint64) string {
	return fmt.Sprintf("headshots/generation-%d.png", generationID)
}
