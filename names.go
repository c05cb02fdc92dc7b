package gonigmo

// NamedGroup returns the text of the group called name from a region filled
// by a successful search of subject. When several groups share the name,
// the first one that matched non-empty text wins; if none did, the result
// is empty. An unknown name is a CodeUndefinedNameReference error.
func (re *Regex) NamedGroup(subject []byte, region *Region, name string) ([]byte, error) {
	re.checkOpen()
	if region == nil {
		return nil, newError(CodeInvalidArgument, ErrorInfo{Expr: "nil region"})
	}
	nums := re.groups[name]
	if len(nums) == 0 {
		return nil, newError(CodeUndefinedNameReference, ErrorInfo{Expr: name})
	}
	for _, n := range nums {
		if n >= region.Len() {
			continue
		}
		p := region.At(n)
		if p.Unset() || p.Begin == p.End {
			continue
		}
		return subject[p.Begin:p.End], nil
	}
	return []byte{}, nil
}
