package renderer

import (
	"fmt"
	"html/template"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/format"
	"github.com/unrolled/render"
)

func New(directory string, isDevelopment bool) *render.Render {
	return render.New(render.Options{
		Directory:     directory,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: isDevelopment,
		Funcs: []template.FuncMap{
			{
				"vnd":     format.VND,
				"percent": format.Percent,
				"rating": func(avg float64) string {
					return fmt.Sprintf("%.1f", avg)
				},
				"score": func(similarity float64) string {
					return fmt.Sprintf("%.0f%%", similarity*100)
				},
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"min": func(a, b int) int {
					if a < b {
						return a
					}
					return b
				},
				"max": func(a, b int) int {
					if a > b {
						return a
					}
					return b
				},
			},
		},
	})
}
