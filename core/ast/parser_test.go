package ast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/promify/core/models"
)

const tokenSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

contract Token is ERC20, Ownable {
    function transfer(address to, uint256 amount) external async returns (bool) {
        return true;
    }

    function balanceOf(address who) external view returns (uint256) {
        return 0;
    }

    function quote(uint256 a, uint256 b)   external   async returns (uint256, bytes32) {}
}
`

func TestExtractContracts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"plain", "contract A {", []string{"A"}},
		{"inheritance", "contract B is C, D {", []string{"B"}},
		{"no space before brace", "contract E{", []string{"E"}},
		{"multiple with duplicates", "contract A {}\ncontract B is A {}\ncontract A {}", []string{"A", "B", "A"}},
		{"abstract", "abstract contract Base {", []string{"Base"}},
		{"interface is not a contract", "interface IFoo {", []string{}},
		{"declaration without brace", "contract Lonely", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractContracts(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractContracts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractAsyncFunctions(t *testing.T) {
	got := ExtractAsyncFunctions(tokenSource)
	want := []models.AsyncFunction{
		{Name: "transfer", Params: "address to, uint256 amount", ReturnType: "bool"},
		{Name: "quote", Params: "uint256 a, uint256 b", ReturnType: "uint256, bytes32"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractAsyncFunctions() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAsyncFunctionsEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []models.AsyncFunction
	}{
		{
			name:    "empty params",
			content: "function ping() external async returns (uint)",
			want:    []models.AsyncFunction{{Name: "ping", ReturnType: "uint"}},
		},
		{
			name:    "public is not external",
			content: "function ping() public async returns (uint)",
			want:    []models.AsyncFunction{},
		},
		{
			name:    "async without returns",
			content: "function fire() external async {}",
			want:    []models.AsyncFunction{},
		},
		{
			name:    "signature split across lines does not match",
			content: "function ping(\n  uint a\n) external async returns (uint)",
			want:    []models.AsyncFunction{},
		},
		{
			name:    "duplicates kept in order",
			content: "function a() external async returns (bool)\nfunction a() external async returns (bool)",
			want: []models.AsyncFunction{
				{Name: "a", ReturnType: "bool"},
				{Name: "a", ReturnType: "bool"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAsyncFunctions(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Token.sol")
	require.NoError(t, os.WriteFile(path, []byte(tokenSource), 0644))

	src, parsed, err := ParseSource(path)
	require.NoError(t, err)
	assert.Equal(t, tokenSource, src.Content)
	assert.Equal(t, path, parsed.Path)
	assert.Equal(t, []string{"Token"}, parsed.Contracts)
	assert.True(t, parsed.HasAsyncFunctions())
	assert.Equal(t, []string{"transferPromise", "quotePromise"}, parsed.PromiseNames())
}

func TestParseSourceMissing(t *testing.T) {
	_, _, err := ParseSource(filepath.Join(t.TempDir(), "nope.sol"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
