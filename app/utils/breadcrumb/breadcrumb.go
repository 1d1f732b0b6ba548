package breadcrumb

type Breadcrumb struct {
	Name string
	URL  string
}

func Home() []Breadcrumb {
	return []Breadcrumb{{Name: "Trang chủ", URL: "/"}}
}

func With(items ...Breadcrumb) []Breadcrumb {
	return append(Home(), items...)
}
