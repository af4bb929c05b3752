package entities

import "strings"

// Query describes how one query's response payload is decoded: either an
// ordered field list zipped positionally with the space-separated reply,
// or a custom decoder for replies that are not positional fields. Exactly
// one of the two is set.
type Query struct {
	// Fields lists the entity keys in reply order
	Fields []string

	// Decode handles replies with their own structure (flag strings,
	// bitfields, option lists)
	Decode func(fields []string) (*Result, error)
}

// rawText folds the whole reply back into a single text field under the
// given key. Used for queries whose reply is an opaque option list or
// token that has no per-field structure.
func rawText(key string) func([]string) (*Result, error) {
	return func(fields []string) (*Result, error) {
		res := NewResult()
		res.Set(key, TextValue(strings.Join(fields, " ")))
		return res, nil
	}
}

// Queries is the static table of supported queries, keyed by the wire
// mnemonic. The key set doubles as the CLI choice list.
var Queries = map[string]Query{
	"QPI":   {Fields: []string{"dev_prot_id"}},
	"QID":   {Fields: []string{"dev_serial"}},
	"QVFW":  {Fields: []string{"fw_ver"}},
	"QVFW2": {Fields: []string{"fw2_ver"}},
	"QPIRI": {Fields: []string{
		"grid_rate_v",
		"grid_rate_c",
		"ac_out_rate_v",
		"ac_out_rate_f",
		"ac_out_rate_c",
		"ac_out_rate_apar_p",
		"ac_out_rate_act_p",
		"bat_rate_v",
		"bat_rchr_v",
		"bat_und_v",
		"bat_bulk_v",
		"bat_flt_v",
		"bat_type",
		"ac_chg_max_c",
		"chg_max_c",
		"ac_in_range_v",
		"out_src_pri",
		"chg_src_pri",
		"para_max_num",
		"inv_type",
		"topology",
		"out_mode",
		"bat_re_dchg_v",
		"pv_para_ok",
		"pv_p_bal",
	}},
	"QFLAG": {Decode: decodeFlags},
	"QPIGS": {Fields: []string{
		"grid_v",
		"grid_f",
		"ac_out_v",
		"ac_out_f",
		"ac_out_apar_p",
		"ac_out_act_p",
		"out_load_perc",
		"bus_v",
		"bat_v",
		"bat_chg_c",
		"bat_cap",
		"inv_temp",
		"pv_bat_cur",
		"pv_in_v",
		"bat_v_scc",
		"bat_dchg_c",
		"dev_stat",
		"unkwn_1",
		"unkwn_2",
		"unkwn_3",
		"unkwn_4",
	}},
	"QMOD":  {Fields: []string{"dev_mode"}},
	"QPIWS": {Decode: decodeWarnings},
	"QDI": {Fields: []string{
		"ac_out_v",
		"ac_out_f",
		"ac_chg_max_c",
		"bat_und_v",
		"chg_float_v",
		"chg_bulk_v",
		"bat_rchr_v",
		"chg_max_c",
		"ac_in_range_v",
		"out_src_pri",
		"chg_src_pri",
		"bat_type",
		"alarm_en",
		"pwr_save_en",
		"ovld_rstr_en",
		"ovr_temp_rstr_en",
		"lcd_blght_en",
		"alrm_pri_src_int_en",
		"flt_code_rec_en",
		"ovrl_bypass_en",
		"lcd_rtn_en",
		"out_mode",
		"bat_re_dchg_v",
		"pv_para_ok",
		"pv_p_bal",
	}},
	"QMCHGCR":  {Decode: rawText("chg_max_c_opts")},
	"QMUCHGCR": {Decode: rawText("ac_chg_max_c_opts")},
	"QBOOT":    {Decode: rawText("dsp_boot")},
	"QOPM":     {Decode: rawText("out_mode_raw")},
	"QPGS0":    {Decode: rawText("para_dev_0")},
}

// decodeFlags adapts the QFLAG parser to the decoder signature. The
// reply is a single field.
func decodeFlags(fields []string) (*Result, error) {
	return ParseDeviceFlags(fields[0])
}

// decodeWarnings adapts the QPIWS parser to the decoder signature. The
// reply is a single field.
func decodeWarnings(fields []string) (*Result, error) {
	return ParseWarnings(fields[0])
}

// Validate checks the static tables for internal consistency: every
// entity key referenced by a positional query or by the warning
// indicator list must resolve. Meant to run at startup or from tests,
// not per request.
func Validate() error {
	for name, q := range Queries {
		for _, key := range q.Fields {
			if _, ok := Entities[key]; !ok {
				return &FormattingError{Key: key, Reason: "query " + name + " references undefined entity"}
			}
		}
	}
	for _, key := range WarningIndicators {
		if _, ok := Entities[key]; !ok {
			return &FormattingError{Key: key, Reason: "warning indicator references undefined entity"}
		}
	}
	return nil
}
