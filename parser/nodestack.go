package parser

// nodeStack holds the CST nodes currently under construction. The bottom
// entry is the file node.
type nodeStack []*Node

func (s nodeStack) topValue() *Node {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// push appends value to the children of the current top and makes it the new top.
func (s *nodeStack) push(value *Node) {
	if top := s.topValue(); top != nil {
		top.Children = append(top.Children, value)
	}
	*s = append(*s, value)
}

// pop removes the top node and returns it.
func (s *nodeStack) pop() *Node {
	if len(*s) == 0 {
		return nil
	}
	value := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return value
}
