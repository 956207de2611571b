// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/meta"
)

const bashCompletionScript = `# bash completion for keydiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_keydiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "bench completion diff gen inspect plan --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local output="--color -c --filter -f --output -o --padding --sort -s --titles -t"
    local source="--cache --duplicates --empty-sections --passphrase --path -p --profile --region --time"
    local limits="--cells --sections --seed --values"

    case "$cmd" in
        diff)
            local opts="$output $source --pick --raw-diff --raw-filter"
            ;;
        plan)
            local opts="$output $source"
            ;;
        inspect)
            local opts="$source"
            ;;
        gen)
            local opts="$limits --iterations --output -o --passphrase --shuffle"
            ;;
        bench)
            local opts="$limits --pairs --workers"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --output|-o)
            if [[ "$cmd" == "gen" ]]; then
                COMPREPLY=( $(compgen -W "json yaml" -- "$cur") )
            else
                COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            fi
            return 0
            ;;
        --duplicates)
            COMPREPLY=( $(compgen -W "fail first" -- "$cur") )
            return 0
            ;;
        --pick)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Snapshot arguments are files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _keydiff keydiff
`

const zshCompletionScript = `#compdef keydiff

_keydiff() {
  local -a cmds
  cmds=(
    'bench:diff many random snapshot pairs concurrently'
    'completion:generate shell completion script'
    'diff:keyed edit set between two snapshots'
    'gen:write a random snapshot'
    'inspect:interactive console over a diff'
    'plan:ordered batch update steps between two snapshots'
  )

  local -a output
  output=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply to rows]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a source
  source=(
  '--cache[reuse cached results]'
  '--duplicates[duplicate key policy]:policy:(fail first)'
  '--empty-sections[report empty section transitions as section edits]'
  '--passphrase[passphrase for encrypted snapshots]:passphrase'
  '(-p --path)'{-p,--path}'[gjson path to the sections array]:path'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--time[log how long the diff took]'
  )

  local -a limits
  limits=(
  '--cells[upper bound on cells per section]:cells'
  '--sections[upper bound on sections per snapshot]:sections'
  '--seed[random seed]:seed'
  '--values[number of distinct cell values]:values'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'keydiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $output \
        $source \
        '--pick[choose snapshots interactively]:directory:_directories' \
        '--raw-diff[also show the unkeyed document delta]' \
        '--raw-filter[top-level keys to hide from the raw delta]:keys' \
        '1:OLD:_files' \
        '2:NEW:_files'
      ;;
    plan)
      _arguments -C \
        $output \
        $source \
        '1:OLD:_files' \
        '2:NEW:_files'
      ;;
    inspect)
      _arguments -C \
        $source \
        '1:OLD:_files' \
        '2:NEW:_files'
      ;;
    gen)
      _arguments -C \
        $limits \
        '--iterations[pbkdf2 iterations]:iterations' \
        '(-o --output)'{-o,--output}'[snapshot format]:format:(json yaml)' \
        '--passphrase[encrypt with this passphrase]:passphrase' \
        '--shuffle[shuffle section and cell order]'
      ;;
    bench)
      _arguments -C \
        $limits \
        '--pairs[number of snapshot pairs]:pairs' \
        '--workers[concurrent workers]:workers'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _keydiff keydiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: keydiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "keydiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
