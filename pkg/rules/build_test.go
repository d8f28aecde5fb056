package rules

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngld/bazel2cmake/pkg/buildfile"
	"github.com/ngld/bazel2cmake/pkg/cmakegen"
)

func evalBuild(t *testing.T, src string) *cmakegen.Output {
	t.Helper()

	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(src))
	require.NoError(t, err)
	return out
}

func assertToplevel(t *testing.T, want string, out *cmakegen.Output) {
	t.Helper()

	if diff := cmp.Diff(want, out.Toplevel()); diff != "" {
		t.Errorf("toplevel mismatch (-want +got):\n%s", diff)
	}
}

func TestCompiledLibrary(t *testing.T) {
	out := evalBuild(t, `cc_library(name = "foo", srcs = ["a.c"], deps = [":bar"])`)

	assertToplevel(t, "add_library(foo\n  a.c)\ntarget_link_libraries(foo\n  bar)\n", out)
	assert.Empty(t, out.Prelude())
}

func TestCompiledLibraryListsSourcesThenHeaders(t *testing.T) {
	out := evalBuild(t, `
cc_library(
    name = "upb",
    srcs = ["upb/decode.c", "upb/table.int.h", "upb/upb.cc"],
    hdrs = ["upb/upb.h", "upb/decode.h"],
)`)

	assertToplevel(t, "add_library(upb\n  upb/decode.c\n  upb/table.int.h\n  upb/upb.cc\n  upb/upb.h\n  upb/decode.h)\n", out)
}

func TestCompiledLibrarySourceInHeaders(t *testing.T) {
	out := evalBuild(t, `cc_library(name = "inl", hdrs = ["x.h", "x.cc"])`)

	assertToplevel(t, "add_library(inl\n  x.h\n  x.cc)\n", out)
}

func TestInterfaceLibrary(t *testing.T) {
	out := evalBuild(t, `cc_library(name = "iface", hdrs = ["h.h"], deps = [":x"])`)

	assertToplevel(t, "add_library(iface INTERFACE)\ntarget_link_libraries(iface INTERFACE\n  x)\n", out)
}

func TestInterfaceLibraryWithoutFiles(t *testing.T) {
	out := evalBuild(t, `cc_library(name = "empty")`)

	assertToplevel(t, "add_library(empty INTERFACE)\n", out)
}

func TestEmptyDepsEmitNoLinkDirective(t *testing.T) {
	out := evalBuild(t, `
cc_library(name = "a", srcs = ["a.c"], deps = [])
cc_library(name = "b", hdrs = ["b.h"], deps = [])
`)

	assertToplevel(t, "add_library(a\n  a.c)\nadd_library(b INTERFACE)\n", out)
}

func TestReservedLibrariesAreSkipped(t *testing.T) {
	for _, name := range []string{"amalgamation", "upbc_generator"} {
		t.Run(name, func(t *testing.T) {
			out := evalBuild(t, `cc_library(name = "`+name+`", srcs = ["a.c"], hdrs = ["a.h"], deps = [":upb"])`)

			assert.Empty(t, out.Toplevel())
			assert.Empty(t, out.Prelude())
		})
	}
}

func TestDependencyLabels(t *testing.T) {
	out := evalBuild(t, `cc_library(
    name = "foo",
    srcs = ["a.c"],
    deps = [":bar", "//third_party:baz", map_dep("@lua//:liblua"), "::odd"],
)`)

	assertToplevel(t, "add_library(foo\n  a.c)\ntarget_link_libraries(foo\n  bar\n  //third_party:baz\n  @lua//:liblua\n  :odd)\n", out)
}

func TestHelpers(t *testing.T) {
	out := evalBuild(t, `
cc_library(
    name = "port",
    srcs = ["port.c"] + glob(["port/*.c"]),
    hdrs = select({
        ":windows": ["port_win.h"],
        "//conditions:default": ["port_posix.h"],
    }),
    copts = select({"//conditions:default": ["-std=c99"]}),
)`)

	assertToplevel(t, "add_library(port\n  port.c)\n", out)
}

func TestMapDepRequiresOneArgument(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`cc_library(name = "a", deps = [map_dep()])`))

	var argErr *buildfile.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "map_dep", argErr.Kind)
}

func TestIgnoredRulesLeaveBuffersUnchanged(t *testing.T) {
	out := evalBuild(t, `
load(":build_defs.bzl", "lua_cclibrary", "upb_amalgamation")

licenses(["notice"])

exports_files(["LICENSE"], visibility = ["//visibility:public"])

package(default_visibility = ["//visibility:public"])

config_setting(name = "windows", constraint_values = ["@bazel_tools//platforms:windows"])

cc_binary(name = "upbc", srcs = ["upbc/main.cc"], deps = [":upbc_generator"])

cc_test(name = "test_varint", srcs = ["tests/test_varint.c"], deps = [":upb"])

genrule(name = "gen", srcs = ["x.in"], outs = ["x.out"], cmd = "cp $< $@")

proto_library(name = "descriptor_proto", srcs = ["google/protobuf/descriptor.proto"])

upb_proto_library(name = "descriptor_upbproto", deps = [":descriptor_proto"])

upb_proto_reflection_library(name = "descriptor_upbreflection", deps = [":descriptor_proto"])

upb_amalgamation(name = "gen_amalgamation", outs = ["upb.c", "upb.h"])

generated_file_staleness_test(name = "test_generated_files", outs = [], generated_pattern = "generated/%s")

py_library(name = "lib", srcs = ["x.py"])

py_binary(name = "bin", srcs = ["x.py"])

lua_cclibrary(name = "lupb", srcs = ["upb/bindings/lua/upb.c"])

lua_library(name = "lua/upb", srcs = ["upb/bindings/lua/upb.lua"])

lua_binary(name = "protoc-gen-lua", main = "tools/upbc.lua")

lua_test(name = "lua/test_upb", luadeps = ["lua/upb"])

sh_test(name = "test_amalgamation", srcs = ["tests/test.sh"])

make_shell_script(name = "gen_test_sh", out = "test.sh", contents = "")
`)

	assert.Empty(t, out.Toplevel())
	assert.Empty(t, out.Prelude())
}

func TestIgnoredRulesStillRequireName(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`cc_test(srcs = ["t.c"])`))

	var missing *buildfile.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "cc_test", missing.Kind)
	assert.Equal(t, "name", missing.Attr)
}

func TestPackageRejectsPositionalArguments(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`package(["//visibility:public"])`))

	var argErr *buildfile.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "package", argErr.Kind)
	assert.Empty(t, out.Toplevel())
}

func TestCcLibraryRequiresName(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`cc_library(srcs = ["a.c"])`))

	var missing *buildfile.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, out.Toplevel())
}

func TestUnknownBuildRule(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`rust_library(name = "x")`))

	var unsupported *buildfile.UnsupportedRuleError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "rust_library", unsupported.Kind)
}

func TestWorkspaceRulesAreNotBuildRules(t *testing.T) {
	out := cmakegen.NewOutput()
	err := Build(out).Eval(context.Background(), "BUILD", []byte(`workspace(name = "upb")`))

	var unsupported *buildfile.UnsupportedRuleError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "build", unsupported.Vocabulary)
}

func TestDuplicateTargetsAreKept(t *testing.T) {
	out := evalBuild(t, `
cc_library(name = "dup", srcs = ["a.c"])
cc_library(name = "dup", hdrs = ["a.h"])
`)

	assertToplevel(t, "add_library(dup\n  a.c)\nadd_library(dup INTERFACE)\n", out)
}
