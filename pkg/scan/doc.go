// Package scan extracts used dotted names from the files of a Python
// distribution.
//
// Each [Scanner] handles one kind of source: Python modules, ZCML, Plone
// FTI and GenericSetup XML, Django settings, docstrings and doc files.
// Discover lists the files a scanner is interested in as [Unit] values;
// Scan turns one unit into a sequence of [dotted.Name] tokens carrying the
// file path and whether the file belongs to the test suite.
//
//	for _, s := range scan.Default() {
//	    units, err := s.Discover(top)
//	    ...
//	    for _, u := range units {
//	        names, err := s.Scan(ctx, u)
//	        ...
//	        db.AddImports(names)
//	    }
//	}
//
// Python sources are parsed with tree-sitter. XML sources use encoding/xml.
package scan
