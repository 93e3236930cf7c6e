package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var avatarColors = []string{
	"#4ECDC4", "#96CEB4", "#98D8C8", "#82E0AA", "#A9DFBF",
	"#45B7D1", "#85C1E9", "#AED6F1", "#F7DC6F", "#F9E79F",
}

// GenerateAvatarWithInitials returns a DiceBear initials avatar URL, used
// as the default profile image when no photo has been uploaded.
func GenerateAvatarWithInitials(initials string) string {
	colorIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(avatarColors))))
	color := avatarColors[colorIndex.Int64()]

	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s&backgroundColor=%s", initials, color)
}

// GetInitialsFromName extracts up to two initials from a display name.
func GetInitialsFromName(name string) string {
	if name == "" {
		return "U"
	}

	runes := []rune(name)
	initials := string(runes[0])

	for i, char := range runes {
		if char == ' ' && i+1 < len(runes) {
			initials += string(runes[i+1])
			break
		}
	}

	if len(initials) == 1 {
		initials += initials
	}

	return initials
}
