package sqlinline

const QSelectAccountByID = `--sql ea024fba-5e40-4836-856a-57f1658a5503
select id, account_type, display_name, member_urn, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at
from accounts
where id = $1;
`

const QSelectAccountByType = `--sql 165982c9-bc1e-4f1b-bddf-0ac730894ef5
select id, account_type, display_name, member_urn, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at
from accounts
where account_type = $1
limit 1;
`

const QListActiveAccounts = `--sql fc67153b-e009-4f68-bfcd-51df2315d131
select id, account_type, display_name, member_urn, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at
from accounts
where is_active;
`

const QUpsertAccount = `--sql c3f08713-63b8-4725-bef8-e9a7b845fe0e
insert into accounts (account_type, display_name, member_urn, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, now(), now())
on conflict (account_type) do update set
    display_name = excluded.display_name,
    member_urn = coalesce(nullif(excluded.member_urn, ''), accounts.member_urn),
    access_token = excluded.access_token,
    refresh_token = excluded.refresh_token,
    token_expires_at = excluded.token_expires_at,
    is_active = excluded.is_active,
    updated_at = now()
returning id, account_type, display_name, member_urn, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at;
`

const QSetAccountMemberURN = `--sql 397ed9a0-754f-414e-b179-7bd1b1e4ae38
update accounts
set member_urn = $2,
    updated_at = now()
where id = $1;
`
