package pypackaging

// Resource is implemented by every kind of resource discovered in a Python
// distribution: module source, bytecode, package data, extension modules and
// so on. The concrete kinds form a closed set; PackagingPolicy.AllowResource
// switches over all of them.
type Resource interface {
	isResource()
}

// ModuleSource is the source code for a Python module.
type ModuleSource struct {
	// Name is the fully qualified module name (e.g. "email.parser").
	Name string

	// Source is the module source code.
	Source []byte

	// IsPackage indicates the module is a package (__init__).
	IsPackage bool

	// IsTest indicates the module belongs to a test package.
	IsTest bool
}

// ModuleBytecodeRequest is a request to compile module source to bytecode at
// build time. The bytecode does not exist yet.
type ModuleBytecodeRequest struct {
	// Name is the fully qualified module name.
	Name string

	// Source is the source code to compile.
	Source []byte

	// OptimizeLevel is the bytecode optimization level (0, 1, or 2).
	OptimizeLevel int

	// IsPackage indicates the module is a package.
	IsPackage bool

	// IsTest indicates the module belongs to a test package.
	IsTest bool
}

// ModuleBytecode is already-compiled module bytecode.
type ModuleBytecode struct {
	// Name is the fully qualified module name.
	Name string

	// Bytecode is the compiled code, without the pyc header.
	Bytecode []byte

	// OptimizeLevel is the optimization level the bytecode was compiled at.
	OptimizeLevel int

	// IsPackage indicates the module is a package.
	IsPackage bool
}

// PackageResource is a non-code resource file belonging to a Python package.
type PackageResource struct {
	// Package is the leaf package the resource belongs to.
	Package string

	// Name is the resource name relative to the package.
	Name string

	// Data is the resource content.
	Data []byte

	// IsTest indicates the resource belongs to a test package.
	IsTest bool
}

// DistributionResource is a package distribution metadata file
// (e.g. an entry under a .dist-info directory).
type DistributionResource struct {
	// Package is the distribution the file belongs to.
	Package string

	// Name is the file name relative to the metadata directory.
	Name string

	// Data is the file content.
	Data []byte
}

// ExtensionModuleDynamicLibrary is a compiled extension module distributed as
// a dynamic library file.
type ExtensionModuleDynamicLibrary struct {
	// Name is the fully qualified extension module name.
	Name string

	// Path is the location of the shared library file.
	Path string
}

// ExtensionModuleStaticallyLinked is a compiled extension module that is
// statically linked into a library.
type ExtensionModuleStaticallyLinked struct {
	// Name is the fully qualified extension module name.
	Name string
}

// PathExtension is a .pth file extending the interpreter's module search
// path.
type PathExtension struct {
	// Path is the location of the .pth file.
	Path string
}

// EggFile is a Python egg archive.
type EggFile struct {
	// Path is the location of the egg file.
	Path string
}

func (*ModuleSource) isResource()                    {}
func (*ModuleBytecodeRequest) isResource()           {}
func (*ModuleBytecode) isResource()                  {}
func (*PackageResource) isResource()                 {}
func (*DistributionResource) isResource()            {}
func (*ExtensionModuleDynamicLibrary) isResource()   {}
func (*ExtensionModuleStaticallyLinked) isResource() {}
func (*PathExtension) isResource()                   {}
func (*EggFile) isResource()                         {}
