package imports

import (
	"sync"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// stdlibModules lists the top-level modules and packages shipped with
// CPython 3, including builtin modules. The "test" regression-suite package
// is left out so that projects importing their own "test" helpers are not
// silenced.
var stdlibModules = []string{
	"__future__", "__main__", "_abc", "_ast", "_asyncio", "_bisect", "_codecs",
	"_collections", "_collections_abc", "_csv", "_datetime", "_functools",
	"_heapq", "_io", "_json", "_locale", "_operator", "_pickle", "_random",
	"_signal", "_socket", "_sre", "_ssl", "_stat", "_string", "_struct",
	"_thread", "_threading_local", "_tracemalloc", "_warnings", "_weakref",
	"_weakrefset", "abc", "aifc", "antigravity", "argparse", "array", "ast",
	"asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64", "bdb",
	"binascii", "binhex", "bisect", "builtins", "bz2", "cProfile", "calendar",
	"cgi", "cgitb", "chunk", "cmath", "cmd", "code", "codecs", "codeop",
	"collections", "colorsys", "compileall", "concurrent", "configparser",
	"contextlib", "contextvars", "copy", "copyreg", "crypt", "csv", "ctypes",
	"curses", "dataclasses", "datetime", "dbm", "decimal", "difflib", "dis",
	"distutils", "doctest", "email", "encodings", "ensurepip", "enum", "errno",
	"faulthandler", "fcntl", "filecmp", "fileinput", "fnmatch", "fractions",
	"ftplib", "functools", "gc", "genericpath", "getopt", "getpass", "gettext",
	"glob", "graphlib", "grp", "gzip", "hashlib", "heapq", "hmac", "html",
	"http", "idlelib", "imaplib", "imghdr", "imp", "importlib", "inspect", "io",
	"ipaddress", "itertools", "json", "keyword", "lib2to3", "linecache",
	"locale", "logging", "lzma", "mailbox", "mailcap", "marshal", "math",
	"mimetypes", "mmap", "modulefinder", "msilib", "msvcrt", "multiprocessing",
	"netrc", "nis", "nntplib", "ntpath", "nturl2path", "numbers", "opcode",
	"operator", "optparse", "os", "ossaudiodev", "pathlib", "pdb", "pickle",
	"pickletools", "pipes", "pkgutil", "platform", "plistlib", "poplib",
	"posix", "posixpath", "pprint", "profile", "pstats", "pty", "pwd",
	"py_compile", "pyclbr", "pydoc", "pydoc_data", "pyexpat", "queue", "quopri",
	"random", "re", "readline", "reprlib", "resource", "rlcompleter", "runpy",
	"sched", "secrets", "select", "selectors", "shelve", "shlex", "shutil",
	"signal", "site", "smtpd", "smtplib", "sndhdr", "socket", "socketserver",
	"spwd", "sqlite3", "sre_compile", "sre_constants", "sre_parse", "ssl",
	"stat", "statistics", "string", "stringprep", "struct", "subprocess",
	"sunau", "symtable", "sys", "sysconfig", "syslog", "tabnanny", "tarfile",
	"telnetlib", "tempfile", "termios", "textwrap", "this", "threading", "time",
	"timeit", "tkinter", "token", "tokenize", "tomllib", "trace", "traceback",
	"tracemalloc", "tty", "turtle", "turtledemo", "types", "typing", "unicodedata",
	"unittest", "urllib", "uu", "uuid", "venv", "warnings", "wave", "weakref",
	"webbrowser", "winreg", "winsound", "wsgiref", "xdrlib", "xml", "xmlrpc",
	"zipapp", "zipfile", "zipimport", "zlib", "zoneinfo",
}

// stdlib is built once and never mutated afterwards.
var stdlib = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{}, len(stdlibModules))
	for _, m := range stdlibModules {
		set[dotted.SafeName(m)] = struct{}{}
	}
	return set
})

// knownPackages are packaging infrastructure names that are never reported.
var knownPackages = []dotted.Name{
	dotted.New("setuptools"),
	dotted.New("pkg_resources"),
	dotted.New("distribute"),
}

// IsStdlib reports whether n is a standard library module or lives below
// one. Every stdlib entry is a single segment, so containment reduces to
// looking up the first namespace.
func IsStdlib(n dotted.Name) bool {
	if n.IsZero() {
		return false
	}
	_, ok := stdlib()[n.Namespaces()[0]]
	return ok
}

// IsKnownPackage reports whether n is packaging infrastructure.
func IsKnownPackage(n dotted.Name) bool {
	for _, k := range knownPackages {
		if n.In(k) {
			return true
		}
	}
	return false
}
