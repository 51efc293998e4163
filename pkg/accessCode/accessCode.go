package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateCode packs a tournament id and its scoring secret into an
// opaque code suitable for an email link.
func GenerateCode(tournamentID, secret string) string {
	code := fmt.Sprintf("%s|%s", tournamentID, secret)

	return base64.StdEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (tournamentID, secret string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
