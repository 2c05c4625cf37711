package entity

// Product a busbar-support variant returned by a search, with its catalog rows
// and the calculated maximum distance between supports.
type Product struct {
	Variant        ComponentVariant
	AdditionalInfo []ProductInfo
}

// ProductInfo catalog row plus the upstream L answer (nil when unknown).
type ProductInfo struct {
	ComponentInfo
	L *string
}

// HasImg1 reports whether the first catalog row carries an img1 article reference.
func (p *Product) HasImg1() bool {
	return len(p.AdditionalInfo) > 0 && p.AdditionalInfo[0].Img1Article != ""
}
