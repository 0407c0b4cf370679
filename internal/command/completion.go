// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/meta"
)

const bashCompletionScript = `# bash completion for assetq
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_assetq()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "aq oq spq cq ops completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--browse -b --clauses -f --color -c --columns -a --local -l --now --output -o --padding -p --schema --sort -s --titles -t --tldr --where -w --workers"

    case "$cmd" in
        aq|oq|spq)
            local opts="$common"
            ;;
        cq)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "assets orders stockpiles" -- "$cur") )
                return 0
            fi
            local opts="--columns -a --tldr"
            ;;
        ops)
            local opts="--tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --clauses|-f)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the dataset source positional; complete files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _assetq assetq
`

const zshCompletionScript = `#compdef assetq

_assetq() {
  local -a cmds
  cmds=(
    'aq:asset query'
    'oq:market order query'
    'spq:stockpile query'
    'cq:list the columns of a dataset kind'
    'ops:list the clause operators'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-b --browse)'{-b,--browse}'[browse the results interactively]'
  '(-f --clauses)'{-f,--clauses}'[clause file]:file:_files'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-a --columns)'{-a,--columns}'[columns to add or change]:columns'
  '(-l --local)'{-l,--local}'[show local timestamps]'
  '--now[reference time]:time'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-p --padding)'{-p,--padding}'[cell padding]:padding'
  '--schema[dump the columns]'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '*'{-w,--where}'[clause to apply]:clause'
  '--workers[parallel filter workers]:workers'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'assetq commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    aq|oq|spq)
      _arguments -C \
        $common \
        '1:source:_files'
      ;;
    cq)
      _arguments -C \
        '(-a --columns)'{-a,--columns}'[columns to add or change]:columns' \
        '--tldr[show tldr page]' \
        '1:kind:(assets orders stockpiles)'
      ;;
    ops)
      _arguments '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _assetq assetq
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: assetq completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "assetq completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
