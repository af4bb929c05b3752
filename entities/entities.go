package entities

// Entity describes one named data field reported by or configured on the
// inverter: how its raw wire text is coerced, how it is displayed, and
// where it lives in the inverter's own setup program menu.
type Entity struct {
	// Desc is the human-readable description
	Desc string

	// Coerce converts the raw wire field into a typed Value
	Coerce Coercion

	// Unit is the display suffix, empty for unitless fields
	Unit string

	// Prog is the program number on the inverter's setup menu, empty
	// when the field has no corresponding program
	Prog string

	// Flag is the single-letter code this entity uses in the QFLAG
	// reply, zero when the entity is not a device flag
	Flag byte
}

// deviceModes maps the QMOD reply code to the mode name.
var deviceModes = map[string]string{
	"P": "Power on mode",
	"S": "Standby mode",
	"L": "Line Mode",
	"B": "Battery mode",
	"F": "Fault mode",
	"H": "Power saving Mode",
}

// Entities is the static table of every known field, keyed by the short
// names used throughout query results. Shared read-only by all requests.
var Entities = map[string]Entity{
	// The protocol ID reads back as "PI30", not a number.
	"dev_prot_id": {Desc: "Device protocol ID", Coerce: Text},
	"dev_serial":  {Desc: "Device serial number", Coerce: Text},
	"fw_ver":      {Desc: "Main CPU firmware version", Coerce: Text},
	"fw2_ver":     {Desc: "Additional CPU firmware version", Coerce: Text},

	// Device rating fields (QPIRI).
	"grid_rate_v":       {Desc: "Grid rating voltage", Coerce: Float, Unit: "V"},
	"grid_rate_c":       {Desc: "Grid rating current", Coerce: Float, Unit: "A"},
	"ac_out_rate_v":     {Desc: "AC output rating voltage", Coerce: Float, Unit: "V"},
	"ac_out_rate_f":     {Desc: "AC output rating frequency", Coerce: Float, Unit: "Hz"},
	"ac_out_rate_c":     {Desc: "AC output rating current", Coerce: Float, Unit: "A"},
	"ac_out_rate_apar_p": {Desc: "AC output rating apparent power", Coerce: Int, Unit: "VA"},
	"ac_out_rate_act_p":  {Desc: "AC output rating active power", Coerce: Int, Unit: "W"},
	"bat_rate_v":        {Desc: "Battery rating voltage", Coerce: Float, Unit: "V"},
	"bat_rchr_v":        {Desc: "Battery re-charge voltage", Coerce: Float, Unit: "V"},
	"bat_und_v":         {Desc: "Battery under voltage", Coerce: Float, Unit: "V"},
	"bat_bulk_v":        {Desc: "Battery bulk voltage", Coerce: Float, Unit: "V"},
	"bat_flt_v":         {Desc: "Battery float voltage", Coerce: Float, Unit: "V"},
	"bat_type": {
		Desc:   "Battery type",
		Coerce: Enum("AGM", "Flooded", "User"),
		Prog:   "05",
	},
	"ac_chg_max_c": {Desc: "AC max charging current", Coerce: Int, Unit: "A"},
	"chg_max_c":    {Desc: "Max charging current total", Coerce: Int, Unit: "A", Prog: "02"},
	"ac_in_range_v": {
		Desc:   "AC input voltage range",
		Coerce: Enum("Appliance", "UPS"),
		Prog:   "03",
	},
	"out_src_pri": {
		Desc:   "Output source priority",
		Coerce: Enum("Utility 1st", "Solar 1st", "SBU 1st"),
		Prog:   "01",
	},
	"chg_src_pri": {
		Desc:   "Charge source priority",
		Coerce: Enum("Utility 1st", "Solar 1st", "Sol+Util", "Sol Only"),
		Prog:   "16",
	},
	"para_max_num": {Desc: "Parallel max num", Coerce: IntOrDash},
	"inv_type": {
		Desc:   "Inverter type",
		Coerce: EnumMap(map[string]string{"00": "Grid tie", "01": "Off grid", "10": "Hybrid"}),
	},
	"topology": {Desc: "Topology", Coerce: Enum("No Transformer", "Transformer")},
	"out_mode": {
		Desc:   "Output mode",
		Coerce: Enum("Single", "Parallel", "Ph1/3", "Ph2/3", "Ph3/3"),
	},
	"bat_re_dchg_v": {Desc: "Battery re-discharge voltage", Coerce: Float, Unit: "V"},
	"pv_para_ok":    {Desc: "PV OK condition for parallel", Coerce: Enum("PV on one", "PV on all")},
	"pv_p_bal":      {Desc: "PV power balance", Coerce: Enum("PV max C", "PV max sum P")},

	// Device flags (QFLAG).
	"alarm_act":        {Desc: "Alarm enabled", Coerce: Bool, Prog: "18", Flag: 'a'},
	"ovrl_bypass":      {Desc: "Overload bypass", Coerce: Bool, Prog: "23", Flag: 'b'},
	"pwr_save":         {Desc: "Power Saving", Coerce: Bool, Flag: 'j'},
	"lcd_rtn":          {Desc: "LCD return to home screen after 1 min", Coerce: Bool, Prog: "19", Flag: 'k'},
	"ovrl_rstrt":       {Desc: "Overload restart", Coerce: Bool, Flag: 'u'},
	"ovr_tmp_rstrt":    {Desc: "Over temperature restart", Coerce: Bool, Flag: 'v'},
	"back_light":       {Desc: "Backlight on", Coerce: Bool, Prog: "20", Flag: 'x'},
	"alrm_pri_src_off": {Desc: "Alarm on primary source interrupt", Coerce: Bool, Prog: "23", Flag: 'y'},
	"flt_code_rec":     {Desc: "Fault code record", Coerce: Bool, Prog: "25", Flag: 'z'},

	// Device status fields (QPIGS).
	"grid_v":        {Desc: "Grid voltage", Coerce: Float, Unit: "V"},
	"grid_f":        {Desc: "Grid frequency", Coerce: Float, Unit: "Hz"},
	"ac_out_v":      {Desc: "AC output voltage", Coerce: Float, Unit: "V"},
	"ac_out_f":      {Desc: "AC output frequency", Coerce: Float, Unit: "Hz"},
	"ac_out_apar_p": {Desc: "AC output apparent power", Coerce: Int, Unit: "VA"},
	"ac_out_act_p":  {Desc: "AC output active power", Coerce: Int, Unit: "W"},
	"out_load_perc": {Desc: "Output load percentage", Coerce: Int, Unit: "%"},
	"bus_v":         {Desc: "Bus voltage", Coerce: Int, Unit: "V"},
	"bat_v":         {Desc: "Battery voltage", Coerce: Float, Unit: "V"},
	"bat_chg_c":     {Desc: "Battery charging current", Coerce: Float, Unit: "A"},
	"bat_cap":       {Desc: "Battery capacity", Coerce: Int, Unit: "%"},
	"inv_temp":      {Desc: "Inverter heat sink temperature", Coerce: Int, Unit: "°C"},
	"pv_bat_cur":    {Desc: "PV input current for battery", Coerce: Int, Unit: "A"},
	"pv_in_v":       {Desc: "PV input voltage", Coerce: Float, Unit: "V"},
	"bat_v_scc":     {Desc: "Battery voltage from SCC", Coerce: Float, Unit: "V"},
	"bat_dchg_c":    {Desc: "Battery discharge current", Coerce: Int, Unit: "A"},
	// dev_stat is a bit string that still needs a proper decoder; the
	// four fields after it are undocumented in the protocol manual.
	"dev_stat": {Desc: "Device status", Coerce: Text},
	"unkwn_1":  {Desc: "Unknown param 1", Coerce: Text},
	"unkwn_2":  {Desc: "Unknown param 2", Coerce: Text},
	"unkwn_3":  {Desc: "Unknown param 3", Coerce: Text},
	"unkwn_4":  {Desc: "Unknown param 4", Coerce: Text},

	"dev_mode": {Desc: "Device mode", Coerce: EnumMap(deviceModes)},

	// Factory default fields reported by QDI that are not part of any
	// other query.
	"chg_float_v":         {Desc: "Default charge float voltage", Coerce: Float, Unit: "V"},
	"chg_bulk_v":          {Desc: "Default charge bulk voltage", Coerce: Float, Unit: "V"},
	"alarm_en":            {Desc: "Default alarm enabled", Coerce: Bool},
	"pwr_save_en":         {Desc: "Default power saving enabled", Coerce: Bool},
	"ovld_rstr_en":        {Desc: "Default overload restart enabled", Coerce: Bool},
	"ovr_temp_rstr_en":    {Desc: "Default over temperature restart enabled", Coerce: Bool},
	"lcd_blght_en":        {Desc: "Default LCD backlight enabled", Coerce: Bool},
	"alrm_pri_src_int_en": {Desc: "Default alarm on primary source interrupt enabled", Coerce: Bool},
	"flt_code_rec_en":     {Desc: "Default fault code record enabled", Coerce: Bool},
	"ovrl_bypass_en":      {Desc: "Default overload bypass enabled", Coerce: Bool},
	"lcd_rtn_en":          {Desc: "Default LCD return to home enabled", Coerce: Bool},

	// Opaque single-value replies (option lists and raw tokens).
	"chg_max_c_opts":    {Desc: "Selectable max charging currents", Coerce: Text, Unit: "A"},
	"ac_chg_max_c_opts": {Desc: "Selectable max AC charging currents", Coerce: Text, Unit: "A"},
	"dsp_boot":          {Desc: "DSP bootstrap state", Coerce: Text},
	"out_mode_raw":      {Desc: "Output mode (raw)", Coerce: Text},
	"para_dev_0":        {Desc: "Parallel device 0 status", Coerce: Text},

	// Warning indicators (QPIWS bitfield positions).
	"wi_res1":          {Desc: "Reserved", Coerce: Bool},
	"wi_inv_fault":     {Desc: "Inverter Fault", Coerce: Bool},
	"wi_bus_ovr":       {Desc: "Bus over voltage Fault", Coerce: Bool},
	"wi_bus_und":       {Desc: "Bus under voltage Fault", Coerce: Bool},
	"wi_bus_soft_fail": {Desc: "Bus soft fail", Coerce: Bool},
	"wi_line_fail":     {Desc: "Line Fail Warning", Coerce: Bool},
	"wi_opv_short":     {Desc: "OPV Short Warning", Coerce: Bool},
	"wi_inv_v_lo":      {Desc: "Inverter Voltage too low Fault", Coerce: Bool},
	"wi_inv_v_hi":      {Desc: "Inverter Voltage too high Fault", Coerce: Bool},
	"wi_ovr_temp":      {Desc: "Over temperature Warn/Fault", Coerce: Bool},
	"wi_fan_lock":      {Desc: "Fan locked Warn/Fault", Coerce: Bool},
	"wi_bat_v_hi":      {Desc: "Battery voltage high Warn/Fault", Coerce: Bool},
	"wi_lo_alrm":       {Desc: "Battery low alarm Warn", Coerce: Bool},
	"wi_res2":          {Desc: "Reserved", Coerce: Bool},
	"wi_bat_und_off":   {Desc: "Battery under shutdown Warning", Coerce: Bool},
	"wi_res3":          {Desc: "Reserved", Coerce: Bool},
	"wi_ovr_load":      {Desc: "Overload", Coerce: Bool},
	"wi_eeprom_fault":  {Desc: "EEPROM fault Warn", Coerce: Bool},
	"wi_inv_ovr_c":     {Desc: "Inverter over current Fault", Coerce: Bool},
	"wi_inv_soft_fail": {Desc: "Inverter soft fail Fault", Coerce: Bool},
	"wi_self_tst_fail": {Desc: "Self test fail Fault", Coerce: Bool},
	"wi_op_dc_v_ovr":   {Desc: "Output DC voltage over Fault", Coerce: Bool},
	"wi_bat_open":      {Desc: "Battery open Fault", Coerce: Bool},
	"wi_c_sen_fail":    {Desc: "Current sensor fail Fault", Coerce: Bool},
	"wi_bat_short":     {Desc: "Battery short Fault", Coerce: Bool},
	"wi_pwr_limit":     {Desc: "Power limit Warning", Coerce: Bool},
	"wi_pv_v_hi":       {Desc: "PV voltage high Warning", Coerce: Bool},
	"wi_mppt_ovr_f":    {Desc: "MPPT overload fault Warning", Coerce: Bool},
	"wi_mppt_ovr_w":    {Desc: "MPPT overload Warning", Coerce: Bool},
	"wi_bat_2_lo":      {Desc: "Battery too low to charge Warn", Coerce: Bool},
	"wi_res4":          {Desc: "Reserved", Coerce: Bool},
	"wi_res5":          {Desc: "Reserved", Coerce: Bool},
}

// WarningIndicators lists the QPIWS indicator keys in wire order:
// position i in the reply bitfield reports the indicator at index i.
var WarningIndicators = [32]string{
	"wi_res1",
	"wi_inv_fault",
	"wi_bus_ovr",
	"wi_bus_und",
	"wi_bus_soft_fail",
	"wi_line_fail",
	"wi_opv_short",
	"wi_inv_v_lo",
	"wi_inv_v_hi",
	"wi_ovr_temp",
	"wi_fan_lock",
	"wi_bat_v_hi",
	"wi_lo_alrm",
	"wi_res2",
	"wi_bat_und_off",
	"wi_res3",
	"wi_ovr_load",
	"wi_eeprom_fault",
	"wi_inv_ovr_c",
	"wi_inv_soft_fail",
	"wi_self_tst_fail",
	"wi_op_dc_v_ovr",
	"wi_bat_open",
	"wi_c_sen_fail",
	"wi_bat_short",
	"wi_pwr_limit",
	"wi_pv_v_hi",
	"wi_mppt_ovr_f",
	"wi_mppt_ovr_w",
	"wi_bat_2_lo",
	"wi_res4",
	"wi_res5",
}

// flagKeys maps the single-letter QFLAG codes to entity keys. Built once
// from the entity table.
var flagKeys = buildFlagKeys()

func buildFlagKeys() map[byte]string {
	m := make(map[byte]string)
	for key, ent := range Entities {
		if ent.Flag != 0 {
			m[ent.Flag] = key
		}
	}
	return m
}
