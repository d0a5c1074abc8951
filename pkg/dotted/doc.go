// Package dotted models hierarchical Python names such as
// "zope.component.adapter".
//
// A [Name] is used uniformly for import references found in source files
// and for requirements declared in package metadata. Names compare equal
// when their safe forms match (lowercased, "-" mapped to "_"), so
// "Zope-Interface" and "zope_interface" are the same entity. Sorting, on the
// other hand, uses the original spelling so reports stay reproducible.
//
// # Containment
//
// The matching rule used throughout the reconciliation engine is
// [Name.In]: an import of "plone.app.dexterity.interfaces.IContentType" is
// in the requirement "plone.app.dexterity", but "plone.app" is not in
// "plone.app.dexterity". Segments are compared whole, so "plo" is never in
// "plone". [Name.Overlaps] is the symmetric variant.
//
// # Sets
//
// [Set] keeps names unique under equality and remembers insertion order.
//
//	reqs := dotted.NewSet(dotted.New("zope.component"))
//	reqs.ContainsName(dotted.New("zope.component.adapter")) // true
package dotted
