// Package fragment produces schema fragments that are guaranteed to merge.
//
// [For] reflects a fragment from a Go configuration type using
// [github.com/google/jsonschema-go/jsonschema.For]. [Infer] derives one from
// a sample YAML or JSON document, using comments as descriptions. Both pass
// their result through [Strip], which removes constructs the merge engine
// rejects, and [Node] converts the result into a [schemamerge.Node]:
//
//	s, err := fragment.For[Settings]()
//	if err != nil {
//	    return err
//	}
//
//	n, err := fragment.Node(s)
//	if err != nil {
//	    return err
//	}
//
//	err = merger.Add(n)
package fragment
