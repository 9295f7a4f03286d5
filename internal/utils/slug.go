package utils

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"strconv"

	"github.com/gosimple/slug"
)

// slugSuffixSpace 36^6（base36で最大6桁）
var slugSuffixSpace = big.NewInt(2176782336)

// RandomBase36 0〜36^6-1 の乱数をbase36で返す
func RandomBase36() string {
	n, err := rand.Int(rand.Reader, slugSuffixSpace)
	if err != nil {
		// 失敗した場合は math/rand にフォールバック
		return strconv.FormatInt(mathrand.Int63n(slugSuffixSpace.Int64()), 36)
	}
	return strconv.FormatInt(n.Int64(), 36)
}

// GenerateSlug タイトルを小文字のURLセーフ文字列にしてランダムな接尾辞を付ける
func GenerateSlug(title string) string {
	base := slug.Make(title)
	if base == "" {
		return RandomBase36()
	}
	return base + "-" + RandomBase36()
}
