package diseases

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

var synonyms = map[string]string{
	"healthy":             HealthyID,
	"tomato healthy":      HealthyID,
	"early blight":        "early_blight",
	"late blight":         "late_blight",
	"bacterial spot":      "bacterial_spot",
	"mosaic virus":        "mosaic_virus",
	"tomato mosaic virus": "mosaic_virus",
	"tmv":                 "mosaic_virus",
	"yellow virus":        "yellow_virus",
	"leaf mold":           "leaf_mold",
	"septoria leaf spot":  "septoria_leaf_spot",

	"corn healthy":              "corn_healthy",
	"common rust":               "corn_common_rust",
	"corn common rust":          "corn_common_rust",
	"gray leaf spot":            "corn_gray_leaf_spot",
	"corn gray leaf spot":       "corn_gray_leaf_spot",
	"northern leaf blight":      "corn_northern_leaf_blight",
	"corn northern leaf blight": "corn_northern_leaf_blight",
}

// Canonicalize maps a classifier label to a registry key.
// Missing, non-string and blank labels resolve to healthy. Labels without a
// synonym become their normalized words joined by underscores, which may not
// name a registered record.
func Canonicalize(label any) string {
	var s string
	switch v := label.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return HealthyID
		}
		s = *v
	default:
		return HealthyID
	}

	s = normalize(s)
	if s == "" {
		return HealthyID
	}
	if id, ok := synonyms[s]; ok {
		return id
	}
	return strings.ReplaceAll(s, " ", "_")
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
